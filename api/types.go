package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// OperationType is a machining process category (milling, turning, ...).
type OperationType struct {
	ID            int64  `json:"id"`
	OperationName string `json:"operation_name"`
}

// Material and Duty are plain reference rows used to populate the
// configuration forms.
type Material struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Duty struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Machine is a backend machine row with its operation-type relation resolved
// to a single typed foreign key. The backend has historically served the
// relation under several shapes (flat op_id, operation_type_id, or a nested
// operation_type object), so decoding is tolerant, but everything past this
// boundary sees only OperationTypeID / OperationTypeName.
type Machine struct {
	ID                int64
	Name              string
	OperationTypeID   int64
	OperationTypeName string
}

func (m *Machine) UnmarshalJSON(b []byte) error {
	var aux struct {
		ID              int64  `json:"id"`
		Name            string `json:"name"`
		OpID            *int64 `json:"op_id"`
		OpTypeID        *int64 `json:"op_type_id"`
		OperationTypeID *int64 `json:"operation_type_id"`
		OperationName   string `json:"operation_name"`
		OperationType   *struct {
			ID            *int64 `json:"id"`
			OperationName string `json:"operation_name"`
		} `json:"operation_type"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	m.ID = aux.ID
	m.Name = aux.Name
	m.OperationTypeName = aux.OperationName

	for _, id := range []*int64{aux.OpID, aux.OpTypeID, aux.OperationTypeID} {
		if id != nil {
			m.OperationTypeID = *id
			break
		}
	}
	if aux.OperationType != nil {
		if m.OperationTypeID == 0 && aux.OperationType.ID != nil {
			m.OperationTypeID = *aux.OperationType.ID
		}
		if aux.OperationType.OperationName != "" {
			m.OperationTypeName = aux.OperationType.OperationName
		}
	}
	return nil
}

func (m Machine) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
		OpID int64  `json:"op_id"`
	}{ID: m.ID, Name: m.Name, OpID: m.OperationTypeID})
}

// MHRRow is a machine-hour-rate configuration row. The backend stores the
// figures as strings, so they stay strings here.
type MHRRow struct {
	ID                   int64          `json:"id,omitempty"`
	OpTypeID             int64          `json:"op_type_id"`
	DutyID               int64          `json:"duty_id"`
	MachineID            int64          `json:"machine_id"`
	InvestmentCost       string         `json:"investment_cost"`
	ElectPowerRating     string         `json:"elect_power_rating"`
	ElectPowerCharges    string         `json:"elect_power_charges"`
	AvailableHrsPerAnnum string         `json:"available_hrs_per_annum"`
	UtilizationHrsYear   string         `json:"utilization_hrs_year"`
	MachineHrRate        string         `json:"machine_hr_rate"`
	OperationType        *OperationType `json:"operation_type,omitempty"`
	Duty                 *Duty          `json:"duty,omitempty"`
	Machine              *Machine       `json:"machine,omitempty"`
}

// Dimensions carries only the fields relevant to the chosen operation:
// diameter+length for round work, length+breadth+height for rectangular.
type Dimensions struct {
	Length   float64  `json:"length"`
	Diameter *float64 `json:"diameter,omitempty"`
	Breadth  *float64 `json:"breadth,omitempty"`
	Height   *float64 `json:"height,omitempty"`
}

// CalculateRequest is the body of POST /cost-estimation/calculate.
type CalculateRequest struct {
	Dimensions      Dimensions `json:"dimensions"`
	Material        string     `json:"material"`
	OperationType   string     `json:"operation_type"`
	MachineName     string     `json:"machine_name"`
	ManHoursPerUnit float64    `json:"man_hours_per_unit"`
}

// Error is a non-2xx backend response. Detail holds the server-provided
// `detail` or `message` text when the body carried one.
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}

// Message reduces any error from the client to the single line shown inline
// in the UI: server-provided text when there is some, a generic fallback
// otherwise.
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return "Could not reach the cost estimation service. Please try again."
}
