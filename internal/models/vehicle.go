package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Supported brands and vehicle types for the managed fleet.
var (
	ValidBrands = []string{
		"Toyota", "Honda", "Ford", "Chevrolet", "BMW", "Mercedes-Benz",
		"Audi", "Hyundai", "Kia", "Volkswagen", "Nissan", "Tata",
		"Mahindra", "Suzuki", "Renault",
	}
	ValidVehicleTypes = []string{"Car", "Truck"}
)

// OdometerReading is one mileage entry on a vehicle.
type OdometerReading struct {
	ReadingID string    `bson:"reading_id" json:"readingId"`
	Mileage   int       `bson:"mileage" json:"mileage"`
	Date      time.Time `bson:"date" json:"date"`
}

// ServiceDetail is the summary appended to a vehicle when a service is paid.
type ServiceDetail struct {
	ServiceID     primitive.ObjectID `bson:"service_id" json:"serviceId"`
	ServiceType   string             `bson:"service_type" json:"serviceType"`
	PaymentStatus string             `bson:"payment_status" json:"paymentStatus"`
	Cost          float64            `bson:"cost" json:"cost"`
	Date          time.Time          `bson:"date" json:"date"`
}

// Vehicle represents a fleet vehicle. VIN is unique and acts as the public
// identifier on the API.
type Vehicle struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VIN              string             `bson:"vin" json:"VIN"`
	Type             string             `bson:"type" json:"type"`
	Make             string             `bson:"make" json:"make"`
	Model            string             `bson:"model" json:"model"`
	Year             int                `bson:"year" json:"year"`
	LastServiceDate  time.Time          `bson:"last_service_date" json:"lastServiceDate"`
	OdometerReadings []OdometerReading  `bson:"odometer_readings" json:"odometerReadings"`
	ServiceDetails   []ServiceDetail    `bson:"service_details" json:"serviceDetails"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
}

// EnrichedVehicle is the list-view shape: the vehicle plus a derived flag
// marking any service that is not finished-and-paid.
type EnrichedVehicle struct {
	Vehicle              `bson:",inline"`
	HasOpenUnpaidService bool `json:"hasOpenUnpaidService"`
}

// CreateVehicleRequest represents a vehicle registration request.
type CreateVehicleRequest struct {
	Type            string `json:"type"`
	Make            string `json:"make"`
	Model           string `json:"model"`
	Year            int    `json:"year"`
	VIN             string `json:"VIN"`
	LastServiceDate string `json:"LastServiceDate"`
}
