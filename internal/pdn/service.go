// Package pdn exposes the debt-load calculation over the regional wage table
// resolved at startup.
package pdn

import (
	"fmt"
	"strings"

	"fjacquet/pdn-calc/internal/apperror"
	"fjacquet/pdn-calc/internal/logging"
	"fjacquet/pdn-calc/internal/numparse"
	"fjacquet/pdn-calc/internal/ratio"
	"fjacquet/pdn-calc/internal/wagetable"
)

// Request is one debt-load query. When Region names a known region its wage
// replaces Income.
type Request struct {
	Income   float64   `json:"income"`
	Payments []float64 `json:"payments"`
	Region   string    `json:"region,omitempty"`
}

// Result is the computed debt load.
type Result struct {
	Ratio  float64    `json:"ratio"`
	Band   ratio.Band `json:"band"`
	Status string     `json:"status"`
	Income float64    `json:"income"`
	Region string     `json:"region,omitempty"`
}

// Service answers queries against an immutable wage table. It is safe for
// concurrent use.
type Service struct {
	table  wagetable.Table
	logger logging.Logger
}

// NewService creates a Service over table.
func NewService(table wagetable.Table, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Service{table: table, logger: logger}
}

// Regions returns every region with its wage, ordered by name.
func (s *Service) Regions() []wagetable.RegionWage {
	return s.table.Entries()
}

// RegionNames returns the region names, ordered.
func (s *Service) RegionNames() []string {
	return s.table.Names()
}

// HasRegion reports whether name is a known region.
func (s *Service) HasRegion(name string) bool {
	_, ok := s.table.Get(strings.TrimSpace(name))
	return ok
}

// Compute returns the ratio and band for req.
func (s *Service) Compute(req Request) (Result, error) {
	income := req.Income
	region := strings.TrimSpace(req.Region)
	if region != "" {
		if wage, ok := s.table.Get(region); ok {
			income = wage
		} else {
			region = ""
		}
	}

	pdn, err := ratio.Calculate(income, req.Payments)
	if err != nil {
		return Result{}, err
	}
	band := ratio.Classify(pdn)

	s.logger.Debug("Computed debt load",
		logging.F(logging.FieldRatio, pdn),
		logging.F(logging.FieldBand, band.String()),
		logging.F(logging.FieldRegion, region))

	return Result{
		Ratio:  pdn,
		Band:   band,
		Status: band.Status(),
		Income: income,
		Region: region,
	}, nil
}

// ParseRequest builds a Request from raw user input. Income may be left blank
// when region names a known region, since the regional wage replaces it.
func (s *Service) ParseRequest(income, payments, region string) (Request, error) {
	region = strings.TrimSpace(region)

	var amount float64
	if strings.TrimSpace(income) != "" || !s.HasRegion(region) {
		v, err := ParseIncome(income)
		if err != nil {
			return Request{}, err
		}
		amount = v
	}

	list, err := ParsePayments(payments)
	if err != nil {
		return Request{}, err
	}
	return Request{Income: amount, Payments: list, Region: region}, nil
}

// ParsePayments splits a comma-separated list of amounts. Blank items are
// ignored; thousands groups may be separated by spaces.
func ParsePayments(list string) ([]float64, error) {
	var payments []float64
	for _, item := range strings.Split(list, ",") {
		if strings.TrimSpace(item) == "" {
			continue
		}
		v, err := numparse.Parse(item)
		if err != nil {
			return nil, &apperror.InvalidInputError{Field: "payments", Reason: fmt.Sprintf("'%s' is not a number", strings.TrimSpace(item))}
		}
		payments = append(payments, v)
	}
	return payments, nil
}

// ParseIncome parses a user-entered income amount.
func ParseIncome(s string) (float64, error) {
	v, err := numparse.Parse(s)
	if err != nil {
		return 0, &apperror.InvalidInputError{Field: "income", Reason: fmt.Sprintf("'%s' is not a number", strings.TrimSpace(s))}
	}
	return v, nil
}
