package event

import (
	"time"

	"registration-service/internal/wizard"

	"github.com/google/uuid"
)

const RegistrationQueue string = "registration_events"

var eventNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("registration-service/events"))

type RegistrationEventType string

const (
	FarmerRegistered RegistrationEventType = "farmer_registered"
)

// RegistrationEvent is the message downstream services (notifications,
// profile) consume after a farmer finishes the wizard. It carries a summary,
// not the whole payload; the payload is in Postgres and the snapshot archive.
type RegistrationEvent struct {
	ID                string                `json:"id"`
	EventType         RegistrationEventType `json:"event_type"`
	RegistrationID    string                `json:"registration_id"`
	FullName          string                `json:"full_name"`
	PhoneNumber       string                `json:"phone_number"`
	District          string                `json:"district"`
	State             string                `json:"state"`
	FarmCount         int                   `json:"farm_count"`
	CropCount         int                   `json:"crop_count"`
	PreferredLanguage string                `json:"preferred_language"`
	ReceiveUpdates    bool                  `json:"receive_updates"`
	WeatherAlerts     bool                  `json:"receive_weather_alerts"`
	JoinCommunity     bool                  `json:"join_community"`
	RegisteredAt      time.Time             `json:"registered_at"`
}

// EventID is stable per event type and registration, so consumers can drop
// repeated deliveries of the same registration.
func EventID(eventType RegistrationEventType, registrationID string) string {
	return uuid.NewSHA1(eventNamespace, []byte(string(eventType)+":"+registrationID)).String()
}

func NewFarmerRegisteredEvent(payload wizard.Payload) RegistrationEvent {
	crops := 0
	for _, farm := range payload.Farms {
		crops += len(farm.Crops)
	}
	return RegistrationEvent{
		ID:                EventID(FarmerRegistered, payload.SessionID),
		EventType:         FarmerRegistered,
		RegistrationID:    payload.SessionID,
		FullName:          payload.PersonalInfo.FullName,
		PhoneNumber:       payload.PersonalInfo.PhoneNumber,
		District:          payload.PersonalInfo.District,
		State:             payload.PersonalInfo.State,
		FarmCount:         len(payload.Farms),
		CropCount:         crops,
		PreferredLanguage: payload.AdditionalInfo.PreferredLanguage,
		ReceiveUpdates:    payload.AdditionalInfo.ReceiveUpdates,
		WeatherAlerts:     payload.AdditionalInfo.ReceiveWeatherAlerts,
		JoinCommunity:     payload.AdditionalInfo.JoinCommunity,
		RegisteredAt:      payload.RegistrationDate,
	}
}
