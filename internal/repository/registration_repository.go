package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"registration-service/internal/models"
	"registration-service/internal/wizard"
	"registration-service/utils"

	"github.com/jmoiron/sqlx"
)

var (
	ErrDuplicateRegistration = errors.New("registration already stored")
	ErrRegistrationNotFound  = errors.New("registration not found")
)

type IRegistrationRepository interface {
	EnsureSchema() error
	CreateRegistration(ctx context.Context, payload wizard.Payload) error
	GetRegistration(ctx context.Context, registrationID string) (*wizard.Payload, error)
}

type RegistrationRepository struct {
	db *sqlx.DB
}

func NewRegistrationRepository(db *sqlx.DB) IRegistrationRepository {
	return &RegistrationRepository{
		db: db,
	}
}

const registrationSchema = `
CREATE TABLE IF NOT EXISTS farmer_registrations (
	registration_id   TEXT PRIMARY KEY,
	full_name         TEXT NOT NULL,
	phone_number      TEXT NOT NULL,
	email             TEXT NOT NULL DEFAULT '',
	date_of_birth     TEXT NOT NULL DEFAULT '',
	gender            TEXT NOT NULL DEFAULT '',
	address           TEXT NOT NULL DEFAULT '',
	village           TEXT NOT NULL,
	district          TEXT NOT NULL,
	state             TEXT NOT NULL,
	pincode           TEXT NOT NULL DEFAULT '',
	livestock         JSONB,
	additional_info   JSONB,
	registration_date TIMESTAMPTZ NOT NULL,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS registration_farms (
	registration_id TEXT NOT NULL REFERENCES farmer_registrations(registration_id) ON DELETE CASCADE,
	farm_id         TEXT NOT NULL,
	position        INT NOT NULL,
	farm_name       TEXT NOT NULL,
	total_area      TEXT NOT NULL,
	soil_type       TEXT NOT NULL,
	irrigation_type TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (registration_id, farm_id)
);

CREATE TABLE IF NOT EXISTS registration_crops (
	registration_id  TEXT NOT NULL,
	farm_id          TEXT NOT NULL,
	crop_id          TEXT NOT NULL,
	position         INT NOT NULL,
	crop_name        TEXT NOT NULL,
	variety          TEXT NOT NULL DEFAULT '',
	area_allocated   TEXT NOT NULL,
	sowing_date      TEXT NOT NULL DEFAULT '',
	expected_harvest TEXT NOT NULL DEFAULT '',
	purpose          TEXT NOT NULL,
	PRIMARY KEY (registration_id, farm_id, crop_id),
	FOREIGN KEY (registration_id, farm_id) REFERENCES registration_farms(registration_id, farm_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_farmer_registrations_phone ON farmer_registrations(phone_number);
`

func (r *RegistrationRepository) EnsureSchema() error {
	if _, err := r.db.Exec(registrationSchema); err != nil {
		return fmt.Errorf("failed to create registration schema: %w", err)
	}
	return nil
}

// CreateRegistration stores the payload under its session id in one
// transaction. A payload already stored yields ErrDuplicateRegistration and
// changes nothing.
func (r *RegistrationRepository) CreateRegistration(ctx context.Context, payload wizard.Payload) error {
	livestock, err := utils.ToJSONMap(payload.Livestock)
	if err != nil {
		return fmt.Errorf("failed to encode livestock: %w", err)
	}
	additional, err := utils.ToJSONMap(payload.AdditionalInfo)
	if err != nil {
		return fmt.Errorf("failed to encode additional info: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	p := payload.PersonalInfo
	query := `
		INSERT INTO farmer_registrations (
			registration_id, full_name, phone_number, email, date_of_birth, gender,
			address, village, district, state, pincode, livestock, additional_info,
			registration_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (registration_id) DO NOTHING`
	err = utils.ExecWithCheck(ctx, tx, query, utils.ExecInsertUnique,
		payload.SessionID, p.FullName, p.PhoneNumber, p.Email, p.DateOfBirth, p.Gender,
		p.Address, p.Village, p.District, p.State, p.Pincode, livestock, additional,
		payload.RegistrationDate,
	)
	if err != nil {
		if errors.Is(err, utils.ErrNoRowsAffected) {
			return ErrDuplicateRegistration
		}
		return fmt.Errorf("failed to insert registration: %w", err)
	}

	farmQuery := `
		INSERT INTO registration_farms (
			registration_id, farm_id, position, farm_name, total_area, soil_type, irrigation_type
		) VALUES (
			:registration_id, :farm_id, :position, :farm_name, :total_area, :soil_type, :irrigation_type
		)`
	cropQuery := `
		INSERT INTO registration_crops (
			registration_id, farm_id, crop_id, position, crop_name, variety,
			area_allocated, sowing_date, expected_harvest, purpose
		) VALUES (
			:registration_id, :farm_id, :crop_id, :position, :crop_name, :variety,
			:area_allocated, :sowing_date, :expected_harvest, :purpose
		)`

	for i, farm := range payload.Farms {
		row := models.RegistrationFarm{
			RegistrationID: payload.SessionID,
			FarmID:         farm.ID,
			Position:       i,
			FarmName:       farm.FarmName,
			TotalArea:      farm.TotalArea,
			SoilType:       farm.SoilType,
			IrrigationType: farm.IrrigationType,
		}
		if _, err := tx.NamedExecContext(ctx, farmQuery, row); err != nil {
			return fmt.Errorf("failed to insert farm %s: %w", farm.ID, err)
		}

		for j, crop := range farm.Crops {
			row := models.RegistrationCrop{
				RegistrationID:  payload.SessionID,
				FarmID:          farm.ID,
				CropID:          crop.ID,
				Position:        j,
				CropName:        crop.CropName,
				Variety:         crop.Variety,
				AreaAllocated:   crop.AreaAllocated,
				SowingDate:      crop.SowingDate,
				ExpectedHarvest: crop.ExpectedHarvest,
				Purpose:         crop.Purpose,
			}
			if _, err := tx.NamedExecContext(ctx, cropQuery, row); err != nil {
				return fmt.Errorf("failed to insert crop %s of farm %s: %w", crop.ID, farm.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit registration: %w", err)
	}
	return nil
}

func (r *RegistrationRepository) GetRegistration(ctx context.Context, registrationID string) (*wizard.Payload, error) {
	var reg models.FarmerRegistration
	query := `SELECT * FROM farmer_registrations WHERE registration_id = $1`
	if err := r.db.GetContext(ctx, &reg, query, registrationID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}

	var farms []models.RegistrationFarm
	query = `SELECT * FROM registration_farms WHERE registration_id = $1 ORDER BY position`
	if err := r.db.SelectContext(ctx, &farms, query, registrationID); err != nil {
		return nil, fmt.Errorf("failed to get registration farms: %w", err)
	}

	var crops []models.RegistrationCrop
	query = `SELECT * FROM registration_crops WHERE registration_id = $1 ORDER BY farm_id, position`
	if err := r.db.SelectContext(ctx, &crops, query, registrationID); err != nil {
		return nil, fmt.Errorf("failed to get registration crops: %w", err)
	}

	return assemblePayload(reg, farms, crops)
}

func assemblePayload(reg models.FarmerRegistration, farms []models.RegistrationFarm, crops []models.RegistrationCrop) (*wizard.Payload, error) {
	payload := &wizard.Payload{
		SessionID: reg.RegistrationID,
		PersonalInfo: wizard.PersonalInfo{
			FullName:    reg.FullName,
			PhoneNumber: reg.PhoneNumber,
			Email:       reg.Email,
			DateOfBirth: reg.DateOfBirth,
			Gender:      reg.Gender,
			Address:     reg.Address,
			Village:     reg.Village,
			District:    reg.District,
			State:       reg.State,
			Pincode:     reg.Pincode,
		},
		Farms:            make([]wizard.FarmInfo, 0, len(farms)),
		RegistrationDate: reg.RegistrationDate.UTC(),
	}
	if err := reg.Livestock.Decode(&payload.Livestock); err != nil {
		return nil, fmt.Errorf("failed to decode livestock: %w", err)
	}
	if err := reg.AdditionalInfo.Decode(&payload.AdditionalInfo); err != nil {
		return nil, fmt.Errorf("failed to decode additional info: %w", err)
	}

	byFarm := make(map[string][]wizard.CropInfo, len(farms))
	for _, c := range crops {
		byFarm[c.FarmID] = append(byFarm[c.FarmID], wizard.CropInfo{
			ID:              c.CropID,
			CropName:        c.CropName,
			Variety:         c.Variety,
			AreaAllocated:   c.AreaAllocated,
			SowingDate:      c.SowingDate,
			ExpectedHarvest: c.ExpectedHarvest,
			Purpose:         c.Purpose,
		})
	}

	for _, f := range farms {
		farmCrops := byFarm[f.FarmID]
		if farmCrops == nil {
			farmCrops = []wizard.CropInfo{}
		}
		payload.Farms = append(payload.Farms, wizard.FarmInfo{
			ID:             f.FarmID,
			FarmName:       f.FarmName,
			TotalArea:      f.TotalArea,
			SoilType:       f.SoilType,
			IrrigationType: f.IrrigationType,
			Crops:          farmCrops,
		})
	}

	return payload, nil
}
