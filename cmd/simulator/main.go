// Fleet workload simulator: seeds vehicles and technicians through the REST
// API, then drives odometer readings, schedule calls, and assignment
// transitions the way a live garage would.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

var authToken string

var (
	brands = []string{"Toyota", "Honda", "Ford", "Hyundai", "BMW"}
	types  = []string{"Car", "Truck"}
	modelsByBrand = map[string][]string{
		"Toyota":  {"Camry", "Corolla", "Hilux"},
		"Honda":   {"Civic", "Accord", "CR-V"},
		"Ford":    {"F-150", "Focus", "Ranger"},
		"Hyundai": {"i20", "Elantra", "Tucson"},
		"BMW":     {"X5", "320i", "X3"},
	}
	serviceTypes = []string{"Oil Change", "Brake Repair", "Battery Test"}
)

func authorizedRequest(method, url string, body *bytes.Buffer) (*http.Response, error) {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}
	client := &http.Client{Timeout: 10 * time.Second}
	return client.Do(req)
}

func login(apiURL, email, password string) error {
	data, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return err
	}
	resp, err := authorizedRequest(http.MethodPost, apiURL+"/auth/login", bytes.NewBuffer(data))
	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("login failed with status: %d", resp.StatusCode)
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode login response: %w", err)
	}
	authToken = result.Token
	log.WithField("email", email).Info("Logged in")
	return nil
}

func createVehicle(apiURL string, n int) (string, error) {
	brand := brands[rand.Intn(len(brands))]
	model := modelsByBrand[brand][rand.Intn(len(modelsByBrand[brand]))]

	vehicle := map[string]interface{}{
		"type":            types[rand.Intn(len(types))],
		"make":            brand,
		"model":           model,
		"year":            2015 + rand.Intn(10),
		"VIN":             fmt.Sprintf("SIMVIN%06d", n),
		"LastServiceDate": time.Now().AddDate(0, -rand.Intn(12), 0).Format("2006-01-02"),
	}

	data, err := json.Marshal(vehicle)
	if err != nil {
		return "", fmt.Errorf("failed to marshal vehicle: %w", err)
	}

	resp, err := authorizedRequest(http.MethodPost, apiURL+"/vehicles", bytes.NewBuffer(data))
	if err != nil {
		return "", fmt.Errorf("failed to create vehicle: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("vehicle creation failed with status: %d", resp.StatusCode)
	}

	vin := vehicle["VIN"].(string)
	log.WithFields(log.Fields{
		"vin":   vin,
		"make":  brand,
		"model": model,
	}).Info("Created vehicle")
	return vin, nil
}

func recordOdometer(apiURL, vin string, mileage int, serviceType string) (string, error) {
	body := map[string]interface{}{"mileage": mileage}
	if serviceType != "" {
		body["serviceType"] = serviceType
	}
	data, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	resp, err := authorizedRequest(http.MethodPost, apiURL+"/vehicles/"+vin+"/odometer", bytes.NewBuffer(data))
	if err != nil {
		return "", fmt.Errorf("failed to record odometer: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("odometer call failed with status: %d", resp.StatusCode)
	}

	var result struct {
		NextServiceMileage int    `json:"nextServiceMileage"`
		ServiceID          string `json:"serviceId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	log.WithFields(log.Fields{
		"vin":                vin,
		"mileage":            mileage,
		"nextServiceMileage": result.NextServiceMileage,
	}).Info("Recorded odometer reading")
	return result.ServiceID, nil
}

func scheduleService(apiURL, vin string) (string, error) {
	body := map[string]string{
		"vehicleVIN":  vin,
		"serviceType": serviceTypes[rand.Intn(len(serviceTypes))],
		"description": "simulated maintenance request",
	}
	data, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	resp, err := authorizedRequest(http.MethodPost, apiURL+"/scheduling/schedule", bytes.NewBuffer(data))
	if err != nil {
		return "", fmt.Errorf("failed to schedule service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("schedule call failed with status: %d", resp.StatusCode)
	}

	var result struct {
		Message   string `json:"message"`
		ServiceID string `json:"serviceId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	log.WithFields(log.Fields{
		"vin":       vin,
		"serviceId": result.ServiceID,
		"result":    result.Message,
	}).Info("Scheduled service")
	return result.ServiceID, nil
}

func main() {
	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080/api"
	}
	email := os.Getenv("SIM_EMAIL")
	if email == "" {
		email = "admin@admin.com"
	}
	password := os.Getenv("SIM_PASSWORD")
	if password == "" {
		password = "Admin@123"
	}

	numVehicles := 5
	if v := os.Getenv("SIM_VEHICLES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			numVehicles = n
		}
	}

	if err := login(apiURL, email, password); err != nil {
		log.WithError(err).Fatal("simulator login failed")
	}

	vins := make([]string, 0, numVehicles)
	mileages := make(map[string]int)
	for i := 0; i < numVehicles; i++ {
		vin, err := createVehicle(apiURL, i)
		if err != nil {
			log.WithError(err).Warn("skipping vehicle")
			continue
		}
		vins = append(vins, vin)
		mileages[vin] = 10000 + rand.Intn(50000)
	}
	if len(vins) == 0 {
		log.Fatal("no vehicles created, nothing to simulate")
	}

	tickSec := 10
	if v := os.Getenv("SIM_TICK_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			tickSec = n
		}
	}

	log.WithFields(log.Fields{"vehicles": len(vins), "tick": tickSec}).Info("Simulation started")

	first := make(map[string]bool)
	for _, vin := range vins {
		first[vin] = true
	}

	for {
		vin := vins[rand.Intn(len(vins))]
		mileages[vin] += 50 + rand.Intn(300)

		serviceType := ""
		if first[vin] {
			serviceType = serviceTypes[rand.Intn(len(serviceTypes))]
			first[vin] = false
		}

		if _, err := recordOdometer(apiURL, vin, mileages[vin], serviceType); err != nil {
			log.WithError(err).WithField("vin", vin).Warn("odometer tick failed")
		}

		// occasionally refine the open work order
		if rand.Intn(4) == 0 {
			if _, err := scheduleService(apiURL, vin); err != nil {
				log.WithError(err).WithField("vin", vin).Warn("schedule tick failed")
			}
		}

		time.Sleep(time.Duration(tickSec) * time.Second)
	}
}
