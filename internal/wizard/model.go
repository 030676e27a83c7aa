package wizard

import "time"

type PersonalInfo struct {
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	DateOfBirth string `json:"date_of_birth"`
	Gender      string `json:"gender"`
	Address     string `json:"address"`
	Village     string `json:"village"`
	District    string `json:"district"`
	State       string `json:"state"`
	Pincode     string `json:"pincode"`
}

type FarmInfo struct {
	ID             string     `json:"id"`
	FarmName       string     `json:"farm_name"`
	TotalArea      string     `json:"total_area"`
	SoilType       string     `json:"soil_type"`
	IrrigationType string     `json:"irrigation_type"`
	Crops          []CropInfo `json:"crops"`
}

type CropInfo struct {
	ID              string `json:"id"`
	CropName        string `json:"crop_name"`
	Variety         string `json:"variety"`
	AreaAllocated   string `json:"area_allocated"`
	SowingDate      string `json:"sowing_date"`
	ExpectedHarvest string `json:"expected_harvest"`
	Purpose         string `json:"purpose"` // commercial, consumption, both
}

type LivestockInfo struct {
	HasCow       bool   `json:"has_cow"`
	CowCount     string `json:"cow_count"`
	HasBuffalo   bool   `json:"has_buffalo"`
	BuffaloCount string `json:"buffalo_count"`
	HasGoat      bool   `json:"has_goat"`
	GoatCount    string `json:"goat_count"`
	HasPoultry   bool   `json:"has_poultry"`
	PoultryCount string `json:"poultry_count"`
	HasOther     bool   `json:"has_other"`
	OtherType    string `json:"other_type"`
	OtherCount   string `json:"other_count"`
}

type AdditionalInfo struct {
	Experience           string `json:"experience"`
	PrimaryIncome        string `json:"primary_income"`
	AnnualIncome         string `json:"annual_income"`
	BankAccount          string `json:"bank_account"`
	IFSCCode             string `json:"ifsc_code"`
	HasKisanCard         bool   `json:"has_kisan_card"`
	KisanCardNumber      string `json:"kisan_card_number"`
	HasCropInsurance     bool   `json:"has_crop_insurance"`
	InsuranceProvider    string `json:"insurance_provider"`
	PreferredLanguage    string `json:"preferred_language"`
	ReceiveUpdates       bool   `json:"receive_updates"`
	ReceiveWeatherAlerts bool   `json:"receive_weather_alerts"`
	JoinCommunity        bool   `json:"join_community"`
}

// Registration is the aggregate owned by one wizard session.
type Registration struct {
	PersonalInfo   PersonalInfo   `json:"personal_info"`
	Farms          []FarmInfo     `json:"farms"`
	Livestock      LivestockInfo  `json:"livestock"`
	AdditionalInfo AdditionalInfo `json:"additional_info"`
}

// Payload is the single snapshot handed to the Submitter.
type Payload struct {
	SessionID        string         `json:"session_id"`
	PersonalInfo     PersonalInfo   `json:"personal_info"`
	Farms            []FarmInfo     `json:"farms"`
	Livestock        LivestockInfo  `json:"livestock"`
	AdditionalInfo   AdditionalInfo `json:"additional_info"`
	RegistrationDate time.Time      `json:"registration_date"`
}

func defaultLivestock() LivestockInfo {
	return LivestockInfo{
		CowCount:     "0",
		BuffaloCount: "0",
		GoatCount:    "0",
		PoultryCount: "0",
		OtherCount:   "0",
	}
}

func defaultAdditionalInfo() AdditionalInfo {
	return AdditionalInfo{
		PreferredLanguage:    "English",
		ReceiveUpdates:       true,
		ReceiveWeatherAlerts: true,
		JoinCommunity:        true,
	}
}

// Clone returns a deep copy so callers never share farm or crop slices.
func (r Registration) Clone() Registration {
	out := r
	out.Farms = make([]FarmInfo, len(r.Farms))
	for i, farm := range r.Farms {
		out.Farms[i] = farm.clone()
	}
	return out
}

func (f FarmInfo) clone() FarmInfo {
	out := f
	out.Crops = make([]CropInfo, len(f.Crops))
	copy(out.Crops, f.Crops)
	return out
}
