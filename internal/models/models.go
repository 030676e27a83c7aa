package models

import (
	"time"

	"registration-service/utils"

	"github.com/golang-jwt/jwt/v5"
)

type FarmerRegistration struct {
	RegistrationID   string        `db:"registration_id" json:"registration_id"`
	FullName         string        `db:"full_name" json:"full_name"`
	PhoneNumber      string        `db:"phone_number" json:"phone_number"`
	Email            string        `db:"email" json:"email"`
	DateOfBirth      string        `db:"date_of_birth" json:"date_of_birth"`
	Gender           string        `db:"gender" json:"gender"`
	Address          string        `db:"address" json:"address"`
	Village          string        `db:"village" json:"village"`
	District         string        `db:"district" json:"district"`
	State            string        `db:"state" json:"state"`
	Pincode          string        `db:"pincode" json:"pincode"`
	Livestock        utils.JSONMap `db:"livestock" json:"livestock"`
	AdditionalInfo   utils.JSONMap `db:"additional_info" json:"additional_info"`
	RegistrationDate time.Time     `db:"registration_date" json:"registration_date"`
	CreatedAt        time.Time     `db:"created_at" json:"created_at"`
}

type RegistrationFarm struct {
	RegistrationID string `db:"registration_id" json:"registration_id"`
	FarmID         string `db:"farm_id" json:"farm_id"`
	Position       int    `db:"position" json:"position"`
	FarmName       string `db:"farm_name" json:"farm_name"`
	TotalArea      string `db:"total_area" json:"total_area"`
	SoilType       string `db:"soil_type" json:"soil_type"`
	IrrigationType string `db:"irrigation_type" json:"irrigation_type"`
}

type RegistrationCrop struct {
	RegistrationID  string `db:"registration_id" json:"registration_id"`
	FarmID          string `db:"farm_id" json:"farm_id"`
	CropID          string `db:"crop_id" json:"crop_id"`
	Position        int    `db:"position" json:"position"`
	CropName        string `db:"crop_name" json:"crop_name"`
	Variety         string `db:"variety" json:"variety"`
	AreaAllocated   string `db:"area_allocated" json:"area_allocated"`
	SowingDate      string `db:"sowing_date" json:"sowing_date"`
	ExpectedHarvest string `db:"expected_harvest" json:"expected_harvest"`
	Purpose         string `db:"purpose" json:"purpose"`
}

// SessionClaims binds a bearer token to one registration session.
type SessionClaims struct {
	jwt.RegisteredClaims
	Id        string `json:"id"`
	SessionID string `json:"session_id"`
}
