package wizard

import (
	"fmt"
	"strings"
)

// ValidateStep reports whether the required fields of step are all filled.
// It has no side effects and reads nothing but its arguments.
func ValidateStep(step Step, reg *Registration) bool {
	return len(MissingFields(step, reg)) == 0
}

// MissingFields lists the dotted paths of every required field of step that is
// empty or blank. Steps outside 1..4 report the step itself.
func MissingFields(step Step, reg *Registration) []string {
	missing := []string{}
	need := func(value, path string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, path)
		}
	}

	switch step {
	case StepPersonal:
		p := reg.PersonalInfo
		need(p.FullName, "personal_info.full_name")
		need(p.PhoneNumber, "personal_info.phone_number")
		need(p.Village, "personal_info.village")
		need(p.District, "personal_info.district")
		need(p.State, "personal_info.state")
	case StepFarms:
		for i, farm := range reg.Farms {
			need(farm.FarmName, fmt.Sprintf("farms[%d].farm_name", i))
			need(farm.TotalArea, fmt.Sprintf("farms[%d].total_area", i))
			need(farm.SoilType, fmt.Sprintf("farms[%d].soil_type", i))
			if len(farm.Crops) == 0 {
				missing = append(missing, fmt.Sprintf("farms[%d].crops", i))
			}
			for j, crop := range farm.Crops {
				need(crop.CropName, fmt.Sprintf("farms[%d].crops[%d].crop_name", i, j))
				need(crop.AreaAllocated, fmt.Sprintf("farms[%d].crops[%d].area_allocated", i, j))
			}
		}
	case StepLivestock:
		// livestock is optional
	case StepAdditional:
		a := reg.AdditionalInfo
		need(a.Experience, "additional_info.experience")
		need(a.PrimaryIncome, "additional_info.primary_income")
		need(a.BankAccount, "additional_info.bank_account")
	default:
		missing = append(missing, fmt.Sprintf("step %d", step))
	}
	return missing
}
