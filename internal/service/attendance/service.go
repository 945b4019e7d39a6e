package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/cmlabs-hris/absensi-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/absensi-backend-go/internal/domain/notice"
	"github.com/cmlabs-hris/absensi-backend-go/internal/domain/session"
	"github.com/cmlabs-hris/absensi-backend-go/internal/pkg/validator"
)

// Banner texts shown to the user
const (
	msgCheckIn          = "Absen masuk berhasil dicatat! Selamat bekerja"
	msgCheckOutNormal   = "Absen pulang berhasil dicatat! Hati-hati di jalan"
	msgCheckOutOvertime = "Absen lembur berhasil dicatat. Terima kasih atas kerja kerasnya!"
	msgLeave            = "Izin Anda berhasil dicatat. Semoga cepat sembuh/selesai urusannya"
	msgDeleted          = "Data absensi berhasil dihapus!"
	msgInvalidRowID     = "ID data tidak valid. Pastikan data memiliki rowId dari server."
	msgBusy             = "Permintaan sebelumnya masih diproses, silakan tunggu."

	// Reminder shown while yesterday's check-out is missing
	ReminderMissingCheckOut = "Anda belum absen PULANG kemarin. Mohon lengkapi terlebih dahulu!"
)

var gateNotices = map[error]string{
	attendance.ErrMissingPreviousCheckOut: "Anda belum absen PULANG kemarin! Mohon lengkapi absensi kemarin terlebih dahulu.",
	attendance.ErrCheckInRequired:         "Anda belum absen MASUK pada tanggal ini! Mohon absen masuk terlebih dahulu.",
	attendance.ErrDuplicateCheckIn:        "Anda sudah melakukan absen MASUK pada tanggal ini!",
	attendance.ErrReasonRequired:          "Mohon isi alasan izin!",
	attendance.ErrCheckoutKindRequired:    "Mohon pilih jenis pulang (Normal atau Lembur)!",
	attendance.ErrWorkScopeRequired:       "Mohon isi scope pekerjaan!",
}

type Config struct {
	// DefaultBackendURL is used when a session has no override.
	DefaultBackendURL string
	// Now defaults to time.Now.
	Now func() time.Time
}

type AttendanceServiceImpl struct {
	engine     *attendance.Engine
	backend    attendance.Backend
	sessions   session.SessionService
	notices    notice.NoticeService
	defaultURL string
	now        func() time.Time

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewAttendanceService(engine *attendance.Engine, backend attendance.Backend, sessions session.SessionService, notices notice.NoticeService, cfg Config) attendance.AttendanceService {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &AttendanceServiceImpl{
		engine:     engine,
		backend:    backend,
		sessions:   sessions,
		notices:    notices,
		defaultURL: cfg.DefaultBackendURL,
		now:        now,
		inFlight:   make(map[string]struct{}),
	}
}

// tryLock marks a mutation of sessionID as running. It fails instead of
// waiting when one already is.
func (s *AttendanceServiceImpl) tryLock(sessionID string) (func(), bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inFlight[sessionID]; busy {
		return nil, false
	}
	s.inFlight[sessionID] = struct{}{}
	return func() {
		s.mu.Lock()
		delete(s.inFlight, sessionID)
		s.mu.Unlock()
	}, true
}

func (s *AttendanceServiceImpl) today() attendance.CalendarDate {
	return s.engine.Normalizer().Today(s.now())
}

func (s *AttendanceServiceImpl) load(ctx context.Context, sessionID string) (*session.Session, error) {
	sess, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if !sess.LoggedIn() {
		return nil, attendance.ErrNoIdentity
	}
	return sess, nil
}

func (s *AttendanceServiceImpl) fetch(ctx context.Context, sess *session.Session) ([]attendance.Record, error) {
	records, err := s.backend.ListRecords(ctx, sess.ResolveBackendURL(s.defaultURL), sess.Identity.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", attendance.ErrBackendFailure, err)
	}
	if records == nil {
		records = []attendance.Record{}
	}
	return records, nil
}

// reload replaces the stored list after a successful fetch. On failure the
// stored list stays and the previous records are returned with the error.
func (s *AttendanceServiceImpl) reload(ctx context.Context, sess *session.Session) ([]attendance.Record, error) {
	records, err := s.fetch(ctx, sess)
	if err != nil {
		slog.Error("Failed to fetch attendance history, keeping stored list", "session_id", sess.ID, "error", err)
		return sess.Records, err
	}
	if err := s.sessions.SetRecords(ctx, sess.ID, records); err != nil {
		return sess.Records, fmt.Errorf("failed to store attendance history: %w", err)
	}
	sess.Records = records
	return records, nil
}

// Refresh implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Refresh(ctx context.Context, sessionID string) ([]attendance.Record, error) {
	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	records, err := s.reload(ctx, sess)
	if err != nil {
		s.notices.Error(sessionID, "Gagal memuat riwayat dari server: "+cause(err))
		return nil, err
	}
	return records, nil
}

// History implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) History(ctx context.Context, sessionID string, filter attendance.HistoryFilter) (attendance.HistoryResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.HistoryResponse{}, err
	}

	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return attendance.HistoryResponse{}, err
	}

	// Omitted filters keep the session's active ones
	typeFilter, dateFilter := sess.TypeFilter, sess.DateFilter
	if filter.Type != nil {
		typeFilter = strings.TrimSpace(*filter.Type)
	}
	if filter.Date != nil {
		dateFilter = strings.TrimSpace(*filter.Date)
	}
	if typeFilter == "" {
		typeFilter = attendance.FilterAll
	}
	if typeFilter != sess.TypeFilter || dateFilter != sess.DateFilter {
		if err := s.sessions.SetFilters(ctx, sessionID, typeFilter, dateFilter); err != nil {
			return attendance.HistoryResponse{}, fmt.Errorf("failed to store history filters: %w", err)
		}
	}

	view := s.engine.History(sess.Records, attendance.HistoryQuery{Type: typeFilter, Date: dateFilter}, s.today())

	resp := attendance.HistoryResponse{
		Reason:     view.Reason,
		TypeFilter: typeFilter,
		DateFilter: dateFilter,
		Items:      make([]attendance.RecordResponse, 0, len(view.Items)),
	}
	for _, item := range view.Items {
		resp.Items = append(resp.Items, attendance.NewRecordResponse(item))
	}
	return resp, nil
}

// Submit implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Submit(ctx context.Context, sessionID string, req attendance.SubmitRequest) (attendance.SubmitResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.SubmitResponse{}, err
	}

	unlock, ok := s.tryLock(sessionID)
	if !ok {
		s.notices.Error(sessionID, msgBusy)
		return attendance.SubmitResponse{}, attendance.ErrMutationInProgress
	}
	defer unlock()

	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return attendance.SubmitResponse{}, err
	}

	sub := req.Submission()
	today := s.today()
	if err := s.engine.Gate(sess.Records, sub, today); err != nil {
		s.notices.Error(sessionID, gateNotices[err])
		return attendance.SubmitResponse{}, err
	}

	record := attendance.BuildRecord(sub, sess.Owner(), s.engine.Normalizer().Locale())

	// An issued save runs to completion even if the caller goes away
	mctx := context.WithoutCancel(ctx)
	if err := s.backend.SaveRecord(mctx, sess.ResolveBackendURL(s.defaultURL), record); err != nil {
		s.notices.Error(sessionID, "Gagal mengirim data: "+err.Error())
		return attendance.SubmitResponse{}, fmt.Errorf("%w: %w", attendance.ErrBackendFailure, err)
	}

	records, err := s.reload(mctx, sess)
	if err != nil {
		// The save went through; the stale list is still served
		slog.Warn("Attendance saved but history refresh failed", "session_id", sessionID, "error", err)
	}

	message := successMessage(sub)
	s.notices.Success(sessionID, message)

	status := s.status(records, today)
	return attendance.SubmitResponse{
		Message: message,
		Record: attendance.NewRecordResponse(attendance.HistoryItem{
			Record:      record,
			Date:        sub.Date,
			HasDate:     true,
			DisplayDate: s.engine.DisplayDate(record),
		}),
		Status: &status,
	}, nil
}

// Delete implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Delete(ctx context.Context, sessionID string, rowID string) error {
	rowID = strings.TrimSpace(rowID)
	if validator.IsBlankRowID(rowID) {
		s.notices.Error(sessionID, msgInvalidRowID)
		return attendance.ErrInvalidRowID
	}

	unlock, ok := s.tryLock(sessionID)
	if !ok {
		s.notices.Error(sessionID, msgBusy)
		return attendance.ErrMutationInProgress
	}
	defer unlock()

	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}

	mctx := context.WithoutCancel(ctx)
	if err := s.backend.DeleteRecord(mctx, sess.ResolveBackendURL(s.defaultURL), rowID, sess.Identity.Email); err != nil {
		s.notices.Error(sessionID, "Gagal menghapus: "+err.Error())
		return fmt.Errorf("%w: %w", attendance.ErrBackendFailure, err)
	}

	if _, err := s.reload(mctx, sess); err != nil {
		slog.Warn("Attendance deleted but history refresh failed", "session_id", sessionID, "error", err)
	}

	s.notices.Success(sessionID, msgDeleted)
	return nil
}

// Status implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Status(ctx context.Context, sessionID string) (attendance.StatusResponse, error) {
	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return attendance.StatusResponse{}, err
	}
	return s.status(sess.Records, s.today()), nil
}

func (s *AttendanceServiceImpl) status(records []attendance.Record, today attendance.CalendarDate) attendance.StatusResponse {
	resp := attendance.StatusResponse{
		Today:             today.String(),
		TodayStatus:       s.engine.StatusForDate(records, today),
		PreviousDayStatus: s.engine.StatusForPreviousDay(records, today),
	}
	if resp.PreviousDayStatus.MissingCheckOut {
		reminder := ReminderMissingCheckOut
		resp.Reminder = &reminder
	}
	return resp
}

// Stats implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Stats(ctx context.Context, sessionID string, filter attendance.StatsFilter) (attendance.StatsResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.StatsResponse{}, err
	}

	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return attendance.StatsResponse{}, err
	}

	stats, err := s.engine.Stats(sess.Records, filter.Month)
	if err != nil {
		return attendance.StatsResponse{}, err
	}
	return attendance.StatsResponse{Month: filter.Month, Statistics: stats}, nil
}

// Months implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Months(ctx context.Context, sessionID string) ([]attendance.MonthOption, error) {
	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.engine.MonthKeys(sess.Records), nil
}

func successMessage(sub attendance.Submission) string {
	switch sub.Type {
	case attendance.TypeCheckIn:
		return msgCheckIn
	case attendance.TypeCheckOut:
		if sub.CheckoutKind == attendance.CheckoutOvertime {
			return msgCheckOutOvertime
		}
		return msgCheckOutNormal
	default:
		return msgLeave
	}
}

// cause strips the backend failure prefix for user-facing text.
func cause(err error) string {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		if errs := joined.Unwrap(); len(errs) == 2 && errors.Is(errs[0], attendance.ErrBackendFailure) {
			return errs[1].Error()
		}
	}
	return err.Error()
}
