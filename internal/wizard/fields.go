package wizard

import (
	"fmt"
	"strconv"
	"strings"
)

type Section string

const (
	SectionPersonal   Section = "personal_info"
	SectionFarm       Section = "farm"
	SectionCrop       Section = "crop"
	SectionLivestock  Section = "livestock"
	SectionAdditional Section = "additional_info"
)

// Target names exactly one field of one entity in the aggregate.
// FarmIndex is read for farm and crop targets, CropIndex for crop targets only.
type Target struct {
	Section   Section `json:"section"`
	FarmIndex int     `json:"farm_index"`
	CropIndex int     `json:"crop_index"`
	Field     string  `json:"field"`
}

func PersonalField(field string) Target {
	return Target{Section: SectionPersonal, Field: field}
}

func FarmField(farmIndex int, field string) Target {
	return Target{Section: SectionFarm, FarmIndex: farmIndex, Field: field}
}

func CropField(farmIndex, cropIndex int, field string) Target {
	return Target{Section: SectionCrop, FarmIndex: farmIndex, CropIndex: cropIndex, Field: field}
}

func LivestockField(field string) Target {
	return Target{Section: SectionLivestock, Field: field}
}

func AdditionalField(field string) Target {
	return Target{Section: SectionAdditional, Field: field}
}

func (t Target) String() string {
	switch t.Section {
	case SectionFarm:
		return fmt.Sprintf("farms[%d].%s", t.FarmIndex, t.Field)
	case SectionCrop:
		return fmt.Sprintf("farms[%d].crops[%d].%s", t.FarmIndex, t.CropIndex, t.Field)
	default:
		return fmt.Sprintf("%s.%s", t.Section, t.Field)
	}
}

var personalText = map[string]func(*PersonalInfo) *string{
	"full_name":     func(p *PersonalInfo) *string { return &p.FullName },
	"phone_number":  func(p *PersonalInfo) *string { return &p.PhoneNumber },
	"email":         func(p *PersonalInfo) *string { return &p.Email },
	"date_of_birth": func(p *PersonalInfo) *string { return &p.DateOfBirth },
	"gender":        func(p *PersonalInfo) *string { return &p.Gender },
	"address":       func(p *PersonalInfo) *string { return &p.Address },
	"village":       func(p *PersonalInfo) *string { return &p.Village },
	"district":      func(p *PersonalInfo) *string { return &p.District },
	"state":         func(p *PersonalInfo) *string { return &p.State },
	"pincode":       func(p *PersonalInfo) *string { return &p.Pincode },
}

// id and crops are owned by the add/remove operations and are not writable here.
var farmText = map[string]func(*FarmInfo) *string{
	"farm_name":       func(f *FarmInfo) *string { return &f.FarmName },
	"total_area":      func(f *FarmInfo) *string { return &f.TotalArea },
	"soil_type":       func(f *FarmInfo) *string { return &f.SoilType },
	"irrigation_type": func(f *FarmInfo) *string { return &f.IrrigationType },
}

var cropText = map[string]func(*CropInfo) *string{
	"crop_name":        func(c *CropInfo) *string { return &c.CropName },
	"variety":          func(c *CropInfo) *string { return &c.Variety },
	"area_allocated":   func(c *CropInfo) *string { return &c.AreaAllocated },
	"sowing_date":      func(c *CropInfo) *string { return &c.SowingDate },
	"expected_harvest": func(c *CropInfo) *string { return &c.ExpectedHarvest },
	"purpose":          func(c *CropInfo) *string { return &c.Purpose },
}

var livestockText = map[string]func(*LivestockInfo) *string{
	"cow_count":     func(l *LivestockInfo) *string { return &l.CowCount },
	"buffalo_count": func(l *LivestockInfo) *string { return &l.BuffaloCount },
	"goat_count":    func(l *LivestockInfo) *string { return &l.GoatCount },
	"poultry_count": func(l *LivestockInfo) *string { return &l.PoultryCount },
	"other_type":    func(l *LivestockInfo) *string { return &l.OtherType },
	"other_count":   func(l *LivestockInfo) *string { return &l.OtherCount },
}

var livestockFlags = map[string]func(*LivestockInfo) *bool{
	"has_cow":     func(l *LivestockInfo) *bool { return &l.HasCow },
	"has_buffalo": func(l *LivestockInfo) *bool { return &l.HasBuffalo },
	"has_goat":    func(l *LivestockInfo) *bool { return &l.HasGoat },
	"has_poultry": func(l *LivestockInfo) *bool { return &l.HasPoultry },
	"has_other":   func(l *LivestockInfo) *bool { return &l.HasOther },
}

var additionalText = map[string]func(*AdditionalInfo) *string{
	"experience":         func(a *AdditionalInfo) *string { return &a.Experience },
	"primary_income":     func(a *AdditionalInfo) *string { return &a.PrimaryIncome },
	"annual_income":      func(a *AdditionalInfo) *string { return &a.AnnualIncome },
	"bank_account":       func(a *AdditionalInfo) *string { return &a.BankAccount },
	"ifsc_code":          func(a *AdditionalInfo) *string { return &a.IFSCCode },
	"kisan_card_number":  func(a *AdditionalInfo) *string { return &a.KisanCardNumber },
	"insurance_provider": func(a *AdditionalInfo) *string { return &a.InsuranceProvider },
	"preferred_language": func(a *AdditionalInfo) *string { return &a.PreferredLanguage },
}

var additionalFlags = map[string]func(*AdditionalInfo) *bool{
	"has_kisan_card":         func(a *AdditionalInfo) *bool { return &a.HasKisanCard },
	"has_crop_insurance":     func(a *AdditionalInfo) *bool { return &a.HasCropInsurance },
	"receive_updates":        func(a *AdditionalInfo) *bool { return &a.ReceiveUpdates },
	"receive_weather_alerts": func(a *AdditionalInfo) *bool { return &a.ReceiveWeatherAlerts },
	"join_community":         func(a *AdditionalInfo) *bool { return &a.JoinCommunity },
}

// applyField writes value into the field named by t. Values are never rejected:
// text fields take their trimmed fmt.Sprint form and flags fall back to false
// when the value does not read as a bool.
func (r *Registration) applyField(t Target, value any) error {
	switch t.Section {
	case SectionPersonal:
		if get, ok := personalText[t.Field]; ok {
			*get(&r.PersonalInfo) = asText(value)
			return nil
		}
	case SectionFarm:
		farm, err := r.farmAt(t.FarmIndex)
		if err != nil {
			return err
		}
		if get, ok := farmText[t.Field]; ok {
			*get(farm) = asText(value)
			return nil
		}
	case SectionCrop:
		crop, err := r.cropAt(t.FarmIndex, t.CropIndex)
		if err != nil {
			return err
		}
		if get, ok := cropText[t.Field]; ok {
			*get(crop) = asText(value)
			return nil
		}
	case SectionLivestock:
		if get, ok := livestockText[t.Field]; ok {
			*get(&r.Livestock) = asText(value)
			return nil
		}
		if get, ok := livestockFlags[t.Field]; ok {
			*get(&r.Livestock) = asFlag(value)
			return nil
		}
	case SectionAdditional:
		if get, ok := additionalText[t.Field]; ok {
			*get(&r.AdditionalInfo) = asText(value)
			return nil
		}
		if get, ok := additionalFlags[t.Field]; ok {
			*get(&r.AdditionalInfo) = asFlag(value)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownField, t)
}

func (r *Registration) farmAt(index int) (*FarmInfo, error) {
	if index < 0 || index >= len(r.Farms) {
		return nil, fmt.Errorf("%w: index %d of %d", ErrFarmNotFound, index, len(r.Farms))
	}
	return &r.Farms[index], nil
}

func (r *Registration) cropAt(farmIndex, cropIndex int) (*CropInfo, error) {
	farm, err := r.farmAt(farmIndex)
	if err != nil {
		return nil, err
	}
	if cropIndex < 0 || cropIndex >= len(farm.Crops) {
		return nil, fmt.Errorf("%w: farm %d crop index %d of %d", ErrCropNotFound, farmIndex, cropIndex, len(farm.Crops))
	}
	return &farm.Crops[cropIndex], nil
}

func asText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func asFlag(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false
		}
		return b
	default:
		return false
	}
}
