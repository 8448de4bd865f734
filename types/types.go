package types

import (
	"errors"

	"github.com/Alphy12345/Alp-version-hal-cost-estimation/api"
)

// EstimateForm holds the cost-estimation form data sent by HTMX.
type EstimateForm struct {
	OperationType   string  `form:"operation_type"`
	Diameter        float64 `form:"diameter"`
	Length          float64 `form:"length"`
	Breadth         float64 `form:"breadth"`
	Height          float64 `form:"height"`
	Material        string  `form:"material"`
	MachineName     string  `form:"machine_name"`
	ManHoursPerUnit float64 `form:"man_hours_per_unit"`
}

// Validate mirrors the backend's constraints so that obviously bad requests
// never leave the console. Checks run in order and the first failure wins.
func (f *EstimateForm) Validate() error {
	if f.OperationType == "" {
		return errors.New("Please select an operation type")
	}
	if f.Length <= 0 {
		return errors.New("Length must be a positive number")
	}
	switch api.Normalize(f.OperationType) {
	case "turning":
		if f.Diameter <= 0 {
			return errors.New("Diameter must be a positive number")
		}
	case "milling":
		if f.Breadth <= 0 {
			return errors.New("Breadth must be a positive number")
		}
		if f.Height <= 0 {
			return errors.New("Height must be a positive number")
		}
	}
	if f.ManHoursPerUnit < 0 {
		return errors.New("Man hours per unit cannot be negative")
	}
	return nil
}

// ToRequest builds the calculate payload, sending only the dimensions that
// apply to the chosen operation: diameter+length for round work,
// length+breadth+height for rectangular.
func (f *EstimateForm) ToRequest() api.CalculateRequest {
	dims := api.Dimensions{Length: f.Length}

	switch api.Normalize(f.OperationType) {
	case "turning", "boring":
		d := f.Diameter
		dims.Diameter = &d
	case "milling", "grinding", "surface treatment":
		b, h := f.Breadth, f.Height
		dims.Breadth = &b
		dims.Height = &h
	default:
		// Flexible operations (drilling, welding, heat treatment) accept
		// either shape; forward whatever the operator filled in.
		if f.Diameter > 0 {
			d := f.Diameter
			dims.Diameter = &d
		} else if f.Breadth > 0 && f.Height > 0 {
			b, h := f.Breadth, f.Height
			dims.Breadth = &b
			dims.Height = &h
		}
	}

	return api.CalculateRequest{
		Dimensions:      dims,
		Material:        f.Material,
		OperationType:   f.OperationType,
		MachineName:     f.MachineName,
		ManHoursPerUnit: f.ManHoursPerUnit,
	}
}

// MachineForm and OperationTypeForm back the configuration page.
type MachineForm struct {
	ID       int64  `form:"id"`
	Name     string `form:"name" binding:"required"`
	OpTypeID int64  `form:"op_type_id" binding:"required"`
}

type OperationTypeForm struct {
	Name string `form:"operation_name" binding:"required"`
}

// MHRForm carries a machine-hour-rate configuration row. The backend keeps
// the figures as strings, so no numeric conversion happens here.
type MHRForm struct {
	ID                   int64  `form:"id"`
	OpTypeID             int64  `form:"op_type_id" binding:"required"`
	DutyID               int64  `form:"duty_id" binding:"required"`
	MachineID            int64  `form:"machine_id" binding:"required"`
	InvestmentCost       string `form:"investment_cost"`
	ElectPowerRating     string `form:"elect_power_rating"`
	ElectPowerCharges    string `form:"elect_power_charges"`
	AvailableHrsPerAnnum string `form:"available_hrs_per_annum"`
	UtilizationHrsYear   string `form:"utilization_hrs_year"`
	MachineHrRate        string `form:"machine_hr_rate" binding:"required"`
}

// ToRow converts the form into the backend's MHR wire shape.
func (f *MHRForm) ToRow() api.MHRRow {
	return api.MHRRow{
		OpTypeID:             f.OpTypeID,
		DutyID:               f.DutyID,
		MachineID:            f.MachineID,
		InvestmentCost:       f.InvestmentCost,
		ElectPowerRating:     f.ElectPowerRating,
		ElectPowerCharges:    f.ElectPowerCharges,
		AvailableHrsPerAnnum: f.AvailableHrsPerAnnum,
		UtilizationHrsYear:   f.UtilizationHrsYear,
		MachineHrRate:        f.MachineHrRate,
	}
}
