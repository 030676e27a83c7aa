package wizard

import "slices"

const (
	PurposeCommercial  = "commercial"
	PurposeConsumption = "consumption"
	PurposeBoth        = "both"
)

var (
	CropOptions = []string{
		"Wheat", "Rice", "Corn", "Barley", "Sorghum", "Millet",
		"Tomato", "Potato", "Onion", "Cabbage", "Cauliflower", "Carrot",
		"Sugarcane", "Cotton", "Jute", "Sunflower", "Mustard", "Groundnut",
		"Soybean", "Chickpea", "Lentil", "Black Gram", "Green Gram",
		"Other",
	}
	SoilTypes         = []string{"Black Soil", "Red Soil", "Alluvial Soil", "Clay Soil", "Sandy Soil", "Loamy Soil", "Mixed"}
	IrrigationTypes   = []string{"Drip Irrigation", "Sprinkler", "Canal", "Tube Well", "Rain Fed", "Mixed"}
	GenderOptions     = []string{"Male", "Female", "Other"}
	ExperienceOptions = []string{"0-2 years", "3-5 years", "6-10 years", "11-20 years", "20+ years"}
	IncomeRanges      = []string{"Below 1 Lakh", "1-3 Lakh", "3-5 Lakh", "5-10 Lakh", "10+ Lakh"}
	Languages         = []string{"English", "Hindi", "Bengali", "Telugu", "Marathi", "Tamil", "Gujarati", "Kannada", "Odia", "Punjabi"}
	PurposeOptions    = []string{PurposeCommercial, PurposeConsumption, PurposeBoth}
)

// Catalog groups every fixed option set by name, for clients that render pickers.
type Catalog struct {
	Crops           []string `json:"crops"`
	SoilTypes       []string `json:"soil_types"`
	IrrigationTypes []string `json:"irrigation_types"`
	Genders         []string `json:"genders"`
	Experience      []string `json:"experience"`
	IncomeRanges    []string `json:"income_ranges"`
	Languages       []string `json:"languages"`
	Purposes        []string `json:"purposes"`
}

func Options() Catalog {
	return Catalog{
		Crops:           slices.Clone(CropOptions),
		SoilTypes:       slices.Clone(SoilTypes),
		IrrigationTypes: slices.Clone(IrrigationTypes),
		Genders:         slices.Clone(GenderOptions),
		Experience:      slices.Clone(ExperienceOptions),
		IncomeRanges:    slices.Clone(IncomeRanges),
		Languages:       slices.Clone(Languages),
		Purposes:        slices.Clone(PurposeOptions),
	}
}

type catalogKey struct {
	section Section
	field   string
}

// selectable binds a picker-backed field to the options it may take.
var selectable = map[catalogKey][]string{
	{SectionPersonal, "gender"}:               GenderOptions,
	{SectionFarm, "soil_type"}:                SoilTypes,
	{SectionFarm, "irrigation_type"}:          IrrigationTypes,
	{SectionCrop, "crop_name"}:                CropOptions,
	{SectionCrop, "purpose"}:                  PurposeOptions,
	{SectionAdditional, "experience"}:         ExperienceOptions,
	{SectionAdditional, "annual_income"}:      IncomeRanges,
	{SectionAdditional, "preferred_language"}: Languages,
}

func optionsFor(section Section, field string) ([]string, bool) {
	opts, ok := selectable[catalogKey{section, field}]
	return opts, ok
}
