package businessflow

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/artemmak/showreel/app/dto"
	"github.com/artemmak/showreel/app/services"
	"github.com/artemmak/showreel/logging"
	"github.com/artemmak/showreel/models"
	"github.com/artemmak/showreel/pricing"
	"github.com/artemmak/showreel/repository"
	"github.com/artemmak/showreel/utils"
	"github.com/xuri/excelize/v2"
)

const defaultNotifyTimeout = 15 * time.Second

// ProjectRequestFlow handles inbound leads and the admin inbox
type ProjectRequestFlow interface {
	SubmitContactRequest(ctx context.Context, req *dto.ContactRequest, metadata *ClientMetadata) (*dto.SubmitProjectRequestResponse, error)
	SubmitCalculatorRequest(ctx context.Context, req *dto.CalculatorProjectRequest, metadata *ClientMetadata) (*dto.SubmitProjectRequestResponse, error)
	AdminListProjectRequests(ctx context.Context, filter *dto.AdminListProjectRequestsFilter) (*dto.AdminListProjectRequestsResponse, error)
	AdminUpdateProjectRequestStatus(ctx context.Context, id string, req *dto.AdminUpdateProjectRequestStatusRequest, adminID uint) (*dto.AdminUpdateProjectRequestStatusResponse, error)
	AdminExportProjectRequests(ctx context.Context, filter *dto.AdminListProjectRequestsFilter) (*dto.AdminExportProjectRequestsResponse, error)
	// Wait blocks until in-flight notifications finish
	Wait()
}

type ProjectRequestFlowImpl struct {
	requestRepo   repository.ProjectRequestRepository
	pricer        *PricingFlowImpl
	notifier      services.NotificationService
	notifyTimeout time.Duration
	wg            sync.WaitGroup
}

func NewProjectRequestFlow(
	requestRepo repository.ProjectRequestRepository,
	settingsRepo repository.PricingSettingsRepository,
	notifier services.NotificationService,
	notifyTimeout time.Duration,
) ProjectRequestFlow {
	if notifyTimeout <= 0 {
		notifyTimeout = defaultNotifyTimeout
	}
	return &ProjectRequestFlowImpl{
		requestRepo:   requestRepo,
		pricer:        &PricingFlowImpl{settingsRepo: settingsRepo},
		notifier:      notifier,
		notifyTimeout: notifyTimeout,
	}
}

type contactFields struct {
	name        string
	telegram    *string
	email       *string
	phone       *string
	description string
}

func validateContact(name string, telegram, email, phone *string, description string, descriptionRequired bool) (contactFields, error) {
	c := contactFields{
		name:        strings.TrimSpace(name),
		telegram:    utils.TrimPtr(telegram),
		email:       utils.TrimPtr(email),
		phone:       utils.TrimPtr(phone),
		description: strings.TrimSpace(description),
	}
	if c.name == "" {
		return c, NewBusinessError("NAME_REQUIRED", "Name is required", ErrNameRequired)
	}
	if descriptionRequired && c.description == "" {
		return c, NewBusinessError("DESCRIPTION_REQUIRED", "Project description is required", ErrDescriptionRequired)
	}
	if c.telegram == nil && c.email == nil {
		return c, NewBusinessError("CONTACT_REQUIRED", "Provide a Telegram handle or an email", ErrContactRequired)
	}
	return c, nil
}

// SubmitContactRequest stores a contact form lead and relays it to the studio chat
func (f *ProjectRequestFlowImpl) SubmitContactRequest(ctx context.Context, req *dto.ContactRequest, metadata *ClientMetadata) (*dto.SubmitProjectRequestResponse, error) {
	if req == nil {
		return nil, NewBusinessError("NAME_REQUIRED", "Name is required", ErrNameRequired)
	}
	c, err := validateContact(req.Name, req.Telegram, req.Email, req.Phone, req.ProjectDescription, true)
	if err != nil {
		return nil, err
	}
	if len(req.Attachments) > utils.MaxAttachments {
		return nil, NewBusinessErrorf("TOO_MANY_ATTACHMENTS", "At most %d attachments are allowed", ErrTooManyAttachments, utils.MaxAttachments)
	}

	attachments := make(models.StringList, 0, len(req.Attachments))
	for _, a := range req.Attachments {
		if a = strings.TrimSpace(a); a != "" {
			attachments = append(attachments, a)
		}
	}

	pr := &models.ProjectRequest{
		Source:             models.ProjectRequestSourceContactForm,
		Name:               c.name,
		Telegram:           c.telegram,
		Email:              c.email,
		Phone:              c.phone,
		ProjectDescription: c.description,
		AudioOptions:       models.StringList{},
		Attachments:        attachments,
		Status:             models.ProjectRequestStatusNew,
	}
	applyMetadata(pr, metadata)

	if err := f.requestRepo.Save(ctx, pr); err != nil {
		return nil, NewBusinessError("PROJECT_REQUEST_SAVE_FAILED", "Failed to save project request", err)
	}
	projectRequestsTotal.WithLabelValues(string(pr.Source)).Inc()

	f.notify(ctx, services.ProjectNotification{
		Kind:        services.NotificationContactForm,
		Name:        pr.Name,
		Telegram:    utils.Deref(pr.Telegram),
		Email:       utils.Deref(pr.Email),
		Description: pr.ProjectDescription,
		Attachments: []string(pr.Attachments),
	})

	return &dto.SubmitProjectRequestResponse{
		Message: "Project request submitted successfully",
		UUID:    pr.UUID.String(),
		Status:  pr.Status.String(),
	}, nil
}

// SubmitCalculatorRequest stores a calculator lead. The budget is recomputed from
// the active price list; a client-side figure is never trusted.
func (f *ProjectRequestFlowImpl) SubmitCalculatorRequest(ctx context.Context, req *dto.CalculatorProjectRequest, metadata *ClientMetadata) (*dto.SubmitProjectRequestResponse, error) {
	if req == nil {
		return nil, NewBusinessError("NAME_REQUIRED", "Name is required", ErrNameRequired)
	}
	c, err := validateContact(req.Name, req.Telegram, req.Email, req.Phone, req.ProjectDescription, false)
	if err != nil {
		return nil, err
	}

	preq, err := ToPricingRequest(&req.Estimate)
	if err != nil {
		return nil, err
	}
	cfg, hidden, err := f.pricer.activeConfig(ctx)
	if err != nil {
		return nil, err
	}
	res := pricing.Compute(preq, cfg)
	budget := res.FinalPrice()

	pr := &models.ProjectRequest{
		Source:             models.ProjectRequestSourceCalculator,
		Name:               c.name,
		Telegram:           c.telegram,
		Email:              c.email,
		Phone:              c.phone,
		ProjectDescription: c.description,
		DurationSeconds:    utils.ToPtr(preq.DurationSeconds),
		Pace:               utils.ToPtr(string(preq.Pace)),
		HasScenario:        preq.HasScenario,
		AudioOptions:       audioOptions(preq),
		Revisions:          utils.ToPtr(preq.Revisions.String()),
		Deadline:           utils.ToPtr(preq.Rush.String()),
		NDA:                utils.ToPtr(string(preq.NDA)),
		BudgetEstimate:     utils.ToPtr(budget),
		Attachments:        models.StringList{},
		Status:             models.ProjectRequestStatusNew,
	}
	applyMetadata(pr, metadata)

	if err := f.requestRepo.Save(ctx, pr); err != nil {
		return nil, NewBusinessError("PROJECT_REQUEST_SAVE_FAILED", "Failed to save project request", err)
	}
	projectRequestsTotal.WithLabelValues(string(pr.Source)).Inc()

	f.notify(ctx, services.ProjectNotification{
		Kind:            services.NotificationCalculatorRequest,
		Name:            pr.Name,
		Telegram:        utils.Deref(pr.Telegram),
		Email:           utils.Deref(pr.Email),
		Description:     pr.ProjectDescription,
		Budget:          budget,
		DurationSeconds: preq.DurationSeconds,
		Pace:            string(preq.Pace),
		HasScenario:     preq.HasScenario,
		NDA:             string(preq.NDA),
		Deadline:        preq.Rush.String(),
		Revisions:       preq.Revisions.String(),
	})

	resp := &dto.SubmitProjectRequestResponse{
		Message: "Project request submitted successfully",
		UUID:    pr.UUID.String(),
		Status:  pr.Status.String(),
	}
	if !hidden {
		resp.BudgetEstimate = utils.ToPtr(budget)
	}
	return resp, nil
}

func (f *ProjectRequestFlowImpl) AdminListProjectRequests(ctx context.Context, filter *dto.AdminListProjectRequestsFilter) (*dto.AdminListProjectRequestsResponse, error) {
	if filter == nil {
		filter = &dto.AdminListProjectRequestsFilter{}
	}
	page, pageSize, err := normalizePagination(filter.Page, filter.PageSize)
	if err != nil {
		return nil, err
	}
	mf, err := toProjectRequestFilter(filter)
	if err != nil {
		return nil, err
	}

	total, err := f.requestRepo.Count(ctx, mf)
	if err != nil {
		return nil, NewBusinessError("PROJECT_REQUEST_LIST_FAILED", "Failed to count project requests", err)
	}
	rows, err := f.requestRepo.ByFilter(ctx, mf, "created_at DESC, id DESC", pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, NewBusinessError("PROJECT_REQUEST_LIST_FAILED", "Failed to list project requests", err)
	}

	items := make([]dto.ProjectRequestDTO, 0, len(rows))
	for _, r := range rows {
		items = append(items, ToProjectRequestDTO(*r))
	}

	return &dto.AdminListProjectRequestsResponse{
		Message:  "Project requests retrieved successfully",
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// AdminUpdateProjectRequestStatus moves a request through the inbox. Setting the
// current status again is a no-op.
func (f *ProjectRequestFlowImpl) AdminUpdateProjectRequestStatus(ctx context.Context, id string, req *dto.AdminUpdateProjectRequestStatusRequest, adminID uint) (*dto.AdminUpdateProjectRequestStatusResponse, error) {
	requestUUID, err := utils.ParseUUID(id)
	if err != nil {
		return nil, NewBusinessError("INVALID_PROJECT_REQUEST_ID", "Project request id must be a UUID", ErrInvalidProjectRequestID)
	}
	if req == nil {
		return nil, NewBusinessError("INVALID_STATUS", "Status is required", ErrInvalidStatus)
	}
	status := models.ProjectRequestStatus(strings.TrimSpace(req.Status))
	if !status.Valid() {
		return nil, NewBusinessError("INVALID_STATUS", "Status must be new, in_progress, done or rejected", ErrInvalidStatus)
	}

	pr, err := f.requestRepo.ByUUID(ctx, requestUUID)
	if err != nil {
		return nil, NewBusinessError("PROJECT_REQUEST_FETCH_FAILED", "Failed to fetch project request", err)
	}
	if pr == nil {
		return nil, NewBusinessError("PROJECT_REQUEST_NOT_FOUND", "Project request not found", ErrProjectRequestNotFound)
	}

	if pr.Status == status {
		return &dto.AdminUpdateProjectRequestStatusResponse{
			Message: "Project request status unchanged",
			Item:    ToProjectRequestDTO(*pr),
		}, nil
	}
	if !pr.CanTransitionTo(status) {
		return nil, NewBusinessErrorf("INVALID_STATUS_TRANSITION", "Cannot move request from %s to %s", ErrInvalidStatusTransition, pr.Status, status)
	}

	if err := f.requestRepo.UpdateStatus(ctx, pr.ID, status); err != nil {
		return nil, NewBusinessError("PROJECT_REQUEST_UPDATE_FAILED", "Failed to update project request status", err)
	}

	logging.L(ctx).Info("project request status changed",
		"admin_id", adminID,
		"uuid", pr.UUID.String(),
		"from", pr.Status.String(),
		"to", status.String(),
	)

	pr.Status = status
	pr.UpdatedAt = utils.UTCNow()
	return &dto.AdminUpdateProjectRequestStatusResponse{
		Message: "Project request status updated successfully",
		Item:    ToProjectRequestDTO(*pr),
	}, nil
}

var projectRequestExportHeader = []string{
	"uuid", "created_at", "source", "status", "name", "telegram", "email", "phone",
	"project_description", "duration_seconds", "pace", "has_scenario", "audio_options", "revisions",
	"deadline", "nda", "budget_estimate", "attachments",
}

// AdminExportProjectRequests renders every matching request into a single-sheet workbook
func (f *ProjectRequestFlowImpl) AdminExportProjectRequests(ctx context.Context, filter *dto.AdminListProjectRequestsFilter) (*dto.AdminExportProjectRequestsResponse, error) {
	if filter == nil {
		filter = &dto.AdminListProjectRequestsFilter{}
	}
	mf, err := toProjectRequestFilter(filter)
	if err != nil {
		return nil, err
	}
	rows, err := f.requestRepo.ByFilter(ctx, mf, "created_at DESC, id DESC", 0, 0)
	if err != nil {
		return nil, NewBusinessError("PROJECT_REQUEST_LIST_FAILED", "Failed to list project requests", err)
	}

	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	sheet := "requests"
	if err := xl.SetSheetName(xl.GetSheetName(0), sheet); err != nil {
		return nil, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to prepare Excel sheet", err)
	}
	header := projectRequestExportHeader
	_ = xl.SetSheetRow(sheet, "A1", &header)

	for ri, r := range rows {
		record := []string{
			r.UUID.String(),
			r.CreatedAt.UTC().Format(time.RFC3339),
			string(r.Source),
			r.Status.String(),
			r.Name,
			utils.Deref(r.Telegram),
			utils.Deref(r.Email),
			utils.Deref(r.Phone),
			r.ProjectDescription,
			optionalInt(r.DurationSeconds),
			utils.Deref(r.Pace),
			strconv.FormatBool(r.HasScenario),
			strings.Join(r.AudioOptions, ", "),
			utils.Deref(r.Revisions),
			utils.Deref(r.Deadline),
			utils.Deref(r.NDA),
			optionalInt64(r.BudgetEstimate),
			strings.Join(r.Attachments, "\n"),
		}
		cellRef, _ := excelize.CoordinatesToCellName(1, ri+2)
		_ = xl.SetSheetRow(sheet, cellRef, &record)
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return nil, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write Excel file", err)
	}

	return &dto.AdminExportProjectRequestsResponse{
		Filename: exportFilename(),
		Data:     buf.Bytes(),
	}, nil
}

func (f *ProjectRequestFlowImpl) Wait() {
	f.wg.Wait()
}

// notify relays a notification in the background; failures are logged only
func (f *ProjectRequestFlowImpl) notify(ctx context.Context, n services.ProjectNotification) {
	if f.notifier == nil {
		return
	}

	logger := logging.L(ctx)
	bgCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), f.notifyTimeout)

	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		defer cancel()

		err := f.notifier.NotifyProjectRequest(bgCtx, n)
		switch {
		case err == nil:
			notificationsTotal.WithLabelValues("sent").Inc()
		case errors.Is(err, services.ErrTelegramNotConfigured):
			notificationsTotal.WithLabelValues("skipped").Inc()
		default:
			notificationsTotal.WithLabelValues("failed").Inc()
			logger.Error("project request notification failed", "kind", string(n.Kind), "error", err)
		}
	}()
}

func applyMetadata(pr *models.ProjectRequest, metadata *ClientMetadata) {
	if metadata == nil {
		return
	}
	pr.IPAddress = metadata.IPAddress
	pr.UserAgent = metadata.UserAgent
}

func audioOptions(req pricing.Request) models.StringList {
	out := models.StringList{}
	if req.HasMusic {
		out = append(out, "music")
	}
	if req.HasLipsync {
		out = append(out, "lipsync")
	}
	return out
}

func toProjectRequestFilter(filter *dto.AdminListProjectRequestsFilter) (models.ProjectRequestFilter, error) {
	var mf models.ProjectRequestFilter
	if s := strings.TrimSpace(filter.Status); s != "" {
		status := models.ProjectRequestStatus(s)
		if !status.Valid() {
			return mf, NewBusinessError("INVALID_STATUS", "Unknown status filter", ErrInvalidProjectRequestQuery)
		}
		mf.Status = &status
	}
	if s := strings.TrimSpace(filter.Source); s != "" {
		source := models.ProjectRequestSource(s)
		if !source.Valid() {
			return mf, NewBusinessError("INVALID_SOURCE", "Unknown source filter", ErrInvalidProjectRequestQuery)
		}
		mf.Source = &source
	}
	return mf, nil
}

func exportFilename() string {
	now, err := utils.MoscowNow()
	if err != nil {
		now = utils.UTCNow()
	}
	return fmt.Sprintf("project_requests_%s.xlsx", now.Format("20060102_150405"))
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func optionalInt64(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}
