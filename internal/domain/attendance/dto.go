package attendance

import (
	"strings"

	"github.com/cmlabs-hris/absensi-backend-go/internal/pkg/validator"
)

// ========================================
// REQUEST DTOs
// ========================================

type SubmitRequest struct {
	Type         string `json:"type"`
	Date         string `json:"date"` // YYYY-MM-DD
	Reason       string `json:"reason"`
	CheckoutKind string `json:"checkout_kind"`
	WorkScope    string `json:"work_scope"`
}

// Validate checks the fields every submission needs. Type-specific fields are
// left to the gating rules so their ordering is preserved.
func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Type) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type is required",
		})
	} else if _, ok := ParseType(r.Type); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: Masuk, Pulang, Izin, Sakit",
		})
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if !validator.IsEmpty(r.CheckoutKind) {
		if _, ok := ParseCheckoutKind(r.CheckoutKind); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "checkout_kind",
				Message: "checkout_kind must be one of: Normal, Lembur",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Submission converts a validated request.
func (r *SubmitRequest) Submission() Submission {
	t, _ := ParseType(r.Type)
	d, _ := ParseISODate(r.Date)
	kind, _ := ParseCheckoutKind(r.CheckoutKind)
	return Submission{
		Type:         t,
		Date:         d,
		Reason:       r.Reason,
		CheckoutKind: kind,
		WorkScope:    r.WorkScope,
	}
}

type HistoryFilter struct {
	Type *string `json:"type,omitempty"`
	Date *string `json:"date,omitempty"` // YYYY-MM-DD or a legacy date string
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Type != nil && !isAllFilter(*f.Type) {
		if _, ok := ParseType(*f.Type); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "type",
				Message: "type must be one of: semua, Masuk, Pulang, Izin, Sakit",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type StatsFilter struct {
	Month string `json:"month"` // "all" or YYYY-MM
}

func (f *StatsFilter) Validate() error {
	var errs validator.ValidationErrors

	f.Month = strings.TrimSpace(f.Month)
	if f.Month == "" {
		f.Month = MonthAll // Default: every month
	}
	if f.Month != MonthAll && !IsMonthKey(f.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be 'all' or in YYYY-MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// RESPONSE DTOs
// ========================================

type RecordResponse struct {
	RowID           string  `json:"row_id"`
	Type            Type    `json:"type"`
	Date            *string `json:"date,omitempty"` // YYYY-MM-DD, nil when dateless
	DisplayDate     string  `json:"display_date"`
	Reason          *string `json:"reason,omitempty"`
	CheckoutKind    *string `json:"checkout_kind,omitempty"`
	WorkScope       *string `json:"work_scope,omitempty"`
	MissingCheckOut bool    `json:"missing_check_out"`
}

type HistoryResponse struct {
	Reason     ViewReason       `json:"reason"`
	TypeFilter string           `json:"type_filter"`
	DateFilter string           `json:"date_filter"`
	Items      []RecordResponse `json:"items"`
}

type StatusResponse struct {
	Today             string            `json:"today"`
	TodayStatus       DayStatus         `json:"today_status"`
	PreviousDayStatus PreviousDayStatus `json:"previous_day_status"`
	Reminder          *string           `json:"reminder,omitempty"`
}

type StatsResponse struct {
	Month      string     `json:"month"`
	Statistics Statistics `json:"statistics"`
}

type SubmitResponse struct {
	Message string          `json:"message"`
	Record  RecordResponse  `json:"record"`
	Status  *StatusResponse `json:"status,omitempty"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// NewRecordResponse flattens a history item for the API.
func NewRecordResponse(item HistoryItem) RecordResponse {
	resp := RecordResponse{
		RowID:           item.Record.RowID.String(),
		Type:            item.Record.Type,
		DisplayDate:     item.DisplayDate,
		Reason:          optional(Detail(item.Record.Reason)),
		CheckoutKind:    optional(Detail(item.Record.CheckoutKind)),
		WorkScope:       optional(Detail(item.Record.WorkScope)),
		MissingCheckOut: item.MissingCheckOut,
	}
	if item.HasDate {
		resp.Date = optional(item.Date.String())
	}
	return resp
}
