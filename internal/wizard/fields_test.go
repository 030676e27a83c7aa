package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateField_WritesEverySection(t *testing.T) {
	w := newTestWizard()
	_, err := w.AddCrop(0)
	require.NoError(t, err)

	require.NoError(t, w.UpdateField(PersonalField("pincode"), "411001"))
	require.NoError(t, w.UpdateField(FarmField(0, "irrigation_type"), "Canal"))
	require.NoError(t, w.UpdateField(CropField(0, 0, "variety"), "HD-2967"))
	require.NoError(t, w.UpdateField(LivestockField("goat_count"), "12"))
	require.NoError(t, w.UpdateField(LivestockField("has_goat"), true))
	require.NoError(t, w.UpdateField(AdditionalField("ifsc_code"), "SBIN0001234"))
	require.NoError(t, w.UpdateField(AdditionalField("join_community"), false))

	reg := w.Registration()
	assert.Equal(t, "411001", reg.PersonalInfo.Pincode)
	assert.Equal(t, "Canal", reg.Farms[0].IrrigationType)
	assert.Equal(t, "HD-2967", reg.Farms[0].Crops[0].Variety)
	assert.Equal(t, "12", reg.Livestock.GoatCount)
	assert.True(t, reg.Livestock.HasGoat)
	assert.Equal(t, "SBIN0001234", reg.AdditionalInfo.IFSCCode)
	assert.False(t, reg.AdditionalInfo.JoinCommunity)
}

func TestUpdateField_NeverRejectsValues(t *testing.T) {
	w := newTestWizard()

	require.NoError(t, w.UpdateField(FarmField(0, "total_area"), 7.5))
	require.NoError(t, w.UpdateField(PersonalField("full_name"), nil))
	require.NoError(t, w.UpdateField(LivestockField("has_cow"), "true"))
	require.NoError(t, w.UpdateField(LivestockField("has_buffalo"), "not a bool"))
	require.NoError(t, w.UpdateField(AdditionalField("has_kisan_card"), 1))

	reg := w.Registration()
	assert.Equal(t, "7.5", reg.Farms[0].TotalArea)
	assert.Equal(t, "", reg.PersonalInfo.FullName)
	assert.True(t, reg.Livestock.HasCow)
	assert.False(t, reg.Livestock.HasBuffalo)
	assert.False(t, reg.AdditionalInfo.HasKisanCard)
}

func TestUpdateField_StructuralErrors(t *testing.T) {
	w := newTestWizard()

	assert.ErrorIs(t, w.UpdateField(PersonalField("nickname"), "x"), ErrUnknownField)
	assert.ErrorIs(t, w.UpdateField(FarmField(0, "id"), "x"), ErrUnknownField)
	assert.ErrorIs(t, w.UpdateField(FarmField(0, "crops"), "x"), ErrUnknownField)
	assert.ErrorIs(t, w.UpdateField(Target{Section: "weather", Field: "x"}, "x"), ErrUnknownField)
	assert.ErrorIs(t, w.UpdateField(FarmField(1, "farm_name"), "x"), ErrFarmNotFound)
	assert.ErrorIs(t, w.UpdateField(CropField(0, 0, "crop_name"), "x"), ErrCropNotFound)
}

func TestSelect_AcceptsCatalogOptions(t *testing.T) {
	w := newTestWizard()
	_, err := w.AddCrop(0)
	require.NoError(t, err)

	require.NoError(t, w.Select(FarmField(0, "soil_type"), "Black Soil"))
	require.NoError(t, w.Select(FarmField(0, "irrigation_type"), "Drip Irrigation"))
	require.NoError(t, w.Select(CropField(0, 0, "crop_name"), "Groundnut"))
	require.NoError(t, w.Select(CropField(0, 0, "purpose"), PurposeBoth))
	require.NoError(t, w.Select(PersonalField("gender"), "Female"))
	require.NoError(t, w.Select(AdditionalField("experience"), "20+ years"))
	require.NoError(t, w.Select(AdditionalField("annual_income"), "1-3 Lakh"))
	require.NoError(t, w.Select(AdditionalField("preferred_language"), "Marathi"))

	reg := w.Registration()
	assert.Equal(t, "Black Soil", reg.Farms[0].SoilType)
	assert.Equal(t, "Groundnut", reg.Farms[0].Crops[0].CropName)
	assert.Equal(t, PurposeBoth, reg.Farms[0].Crops[0].Purpose)
	assert.Equal(t, "Marathi", reg.AdditionalInfo.PreferredLanguage)
}

func TestSelect_RejectsOffCatalogAndFreeTextFields(t *testing.T) {
	w := newTestWizard()

	err := w.Select(FarmField(0, "soil_type"), "Moon Dust")
	assert.ErrorIs(t, err, ErrInvalidOption)
	assert.Empty(t, w.Registration().Farms[0].SoilType)

	err = w.Select(FarmField(0, "farm_name"), "F1")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestSelect_TargetsOnlyTheNamedFarm(t *testing.T) {
	w := newTestWizard()
	_, err := w.AddFarm()
	require.NoError(t, err)

	require.NoError(t, w.Select(FarmField(1, "soil_type"), "Red Soil"))

	reg := w.Registration()
	assert.Empty(t, reg.Farms[0].SoilType)
	assert.Equal(t, "Red Soil", reg.Farms[1].SoilType)
}

func TestTarget_String(t *testing.T) {
	assert.Equal(t, "personal_info.full_name", PersonalField("full_name").String())
	assert.Equal(t, "farms[2].soil_type", FarmField(2, "soil_type").String())
	assert.Equal(t, "farms[1].crops[0].purpose", CropField(1, 0, "purpose").String())
}

func TestUpdateField_StoresTrimmedText(t *testing.T) {
	w := newTestWizard()

	require.NoError(t, w.UpdateField(PersonalField("full_name"), "  Asha Devi \t"))
	require.NoError(t, w.UpdateField(FarmField(0, "total_area"), " 4.5 "))
	require.NoError(t, w.UpdateField(LivestockField("has_cow"), " true "))

	reg := w.Registration()
	assert.Equal(t, "Asha Devi", reg.PersonalInfo.FullName)
	assert.Equal(t, "4.5", reg.Farms[0].TotalArea)
	assert.True(t, reg.Livestock.HasCow)
}

func TestValidateStep_BlankValuesAreMissing(t *testing.T) {
	w := newTestWizard()
	fillPersonal(t, w)
	require.NoError(t, w.UpdateField(PersonalField("village"), "   "))

	assert.False(t, w.ValidateStep(StepPersonal))
	assert.Equal(t, []string{"personal_info.village"}, w.MissingFields(StepPersonal))

	// values stored before trimming on write still count as missing
	st := w.State()
	st.Registration.PersonalInfo.Village = "Khed"
	st.Registration.PersonalInfo.FullName = " \n "
	restored := FromState(st)
	assert.Equal(t, []string{"personal_info.full_name"}, restored.MissingFields(StepPersonal))
}
