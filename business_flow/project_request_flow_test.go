package businessflow

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/artemmak/showreel/app/dto"
	"github.com/artemmak/showreel/app/services"
	"github.com/artemmak/showreel/models"
	"github.com/artemmak/showreel/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type projectRequestFixture struct {
	flow     ProjectRequestFlow
	repo     *fakeProjectRequestRepo
	settings *fakePricingSettingsRepo
	notifier *services.MockNotificationService
}

func newProjectRequestFixture(hide bool) *projectRequestFixture {
	fx := &projectRequestFixture{
		repo:     &fakeProjectRequestRepo{},
		settings: settingsRepoWith(hide),
		notifier: services.NewMockNotificationService(),
	}
	fx.flow = NewProjectRequestFlow(fx.repo, fx.settings, fx.notifier, time.Second)
	return fx
}

func TestProjectRequestFlow_SubmitContact(t *testing.T) {
	ctx := context.Background()

	t.Run("stores and notifies", func(t *testing.T) {
		fx := newProjectRequestFixture(false)
		req := &dto.ContactRequest{
			Name:               "  Anna ",
			Telegram:           utils.ToPtr("@anna"),
			Email:              utils.ToPtr("  "),
			ProjectDescription: "Music video, 2 minutes",
			Attachments:        []string{"https://example.com/ref.png", " "},
		}
		resp, err := fx.flow.SubmitContactRequest(ctx, req, NewClientMetadata("10.0.0.1", "curl/8"))
		require.NoError(t, err)
		assert.Equal(t, "new", resp.Status)
		assert.NotEmpty(t, resp.UUID)
		assert.Nil(t, resp.BudgetEstimate)

		require.Len(t, fx.repo.rows, 1)
		row := fx.repo.rows[0]
		assert.Equal(t, "Anna", row.Name)
		assert.Equal(t, models.ProjectRequestSourceContactForm, row.Source)
		assert.Nil(t, row.Email)
		assert.Equal(t, models.StringList{"https://example.com/ref.png"}, row.Attachments)
		assert.Equal(t, "10.0.0.1", row.IPAddress)

		fx.flow.Wait()
		sent := fx.notifier.Sent()
		require.Len(t, sent, 1)
		assert.Equal(t, services.NotificationContactForm, sent[0].Kind)
		assert.Equal(t, "@anna", sent[0].Telegram)
		assert.Equal(t, "", sent[0].Email)
	})

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name   string
			req    *dto.ContactRequest
			target error
		}{
			{"missing name", &dto.ContactRequest{Name: " ", Email: utils.ToPtr("a@b.c"), ProjectDescription: "x"}, ErrNameRequired},
			{"missing description", &dto.ContactRequest{Name: "A", Email: utils.ToPtr("a@b.c"), ProjectDescription: "  "}, ErrDescriptionRequired},
			{"missing contact", &dto.ContactRequest{Name: "A", Phone: utils.ToPtr("+7 900"), ProjectDescription: "x"}, ErrContactRequired},
			{"too many attachments", &dto.ContactRequest{Name: "A", Email: utils.ToPtr("a@b.c"), ProjectDescription: "x", Attachments: make([]string, 11)}, ErrTooManyAttachments},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				fx := newProjectRequestFixture(false)
				_, err := fx.flow.SubmitContactRequest(ctx, tt.req, nil)
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.target)
				assert.Empty(t, fx.repo.rows)
				fx.flow.Wait()
				assert.Empty(t, fx.notifier.Sent())
			})
		}
	})

	t.Run("notification failure does not fail the request", func(t *testing.T) {
		fx := newProjectRequestFixture(false)
		fx.notifier.Err = errors.New("telegram down")
		_, err := fx.flow.SubmitContactRequest(ctx, &dto.ContactRequest{
			Name: "A", Email: utils.ToPtr("a@b.c"), ProjectDescription: "x",
		}, nil)
		require.NoError(t, err)
		assert.Eventually(t, func() bool { return len(fx.notifier.Sent()) == 1 }, time.Second, 10*time.Millisecond)
		assert.Len(t, fx.repo.rows, 1)
	})

	t.Run("save failure", func(t *testing.T) {
		fx := newProjectRequestFixture(false)
		fx.repo.saveErr = errors.New("db down")
		_, err := fx.flow.SubmitContactRequest(ctx, &dto.ContactRequest{
			Name: "A", Email: utils.ToPtr("a@b.c"), ProjectDescription: "x",
		}, nil)
		var be *BusinessError
		require.True(t, errors.As(err, &be))
		assert.Equal(t, "PROJECT_REQUEST_SAVE_FAILED", be.Code)
		fx.flow.Wait()
		assert.Empty(t, fx.notifier.Sent())
	})
}

func TestProjectRequestFlow_SubmitCalculator(t *testing.T) {
	ctx := context.Background()

	newReq := func() *dto.CalculatorProjectRequest {
		return &dto.CalculatorProjectRequest{
			Name:     "Boris",
			Email:    utils.ToPtr("boris@example.com"),
			Estimate: *defaultEstimate(),
		}
	}

	t.Run("budget is recomputed", func(t *testing.T) {
		fx := newProjectRequestFixture(false)
		req := newReq()
		req.Estimate.HasMusic = true
		resp, err := fx.flow.SubmitCalculatorRequest(ctx, req, nil)
		require.NoError(t, err)

		require.NotNil(t, resp.BudgetEstimate)
		assert.Equal(t, int64(185000), *resp.BudgetEstimate)

		require.Len(t, fx.repo.rows, 1)
		row := fx.repo.rows[0]
		assert.Equal(t, models.ProjectRequestSourceCalculator, row.Source)
		assert.Equal(t, int64(185000), *row.BudgetEstimate)
		assert.Equal(t, 90, *row.DurationSeconds)
		assert.Equal(t, "dynamic", *row.Pace)
		assert.Equal(t, "30", *row.Deadline)
		assert.Equal(t, "2", *row.Revisions)
		assert.Equal(t, "none", *row.NDA)
		assert.True(t, row.HasScenario)
		assert.Equal(t, models.StringList{"music"}, row.AudioOptions)

		fx.flow.Wait()
		sent := fx.notifier.Sent()
		require.Len(t, sent, 1)
		assert.Equal(t, services.NotificationCalculatorRequest, sent[0].Kind)
		assert.Equal(t, int64(185000), sent[0].Budget)
		assert.Equal(t, 90, sent[0].DurationSeconds)
		assert.True(t, sent[0].HasScenario)
	})

	t.Run("discounted budget", func(t *testing.T) {
		fx := newProjectRequestFixture(false)
		req := newReq()
		req.Estimate.DurationSeconds = 600
		req.Estimate.Pace = "standard"
		req.Estimate.HasScenario = false
		resp, err := fx.flow.SubmitCalculatorRequest(ctx, req, nil)
		require.NoError(t, err)
		// 150 frames * 3000 = 450000, 20% off
		assert.Equal(t, int64(360000), *resp.BudgetEstimate)
		fx.flow.Wait()
	})

	t.Run("hidden pricing keeps budget server-side", func(t *testing.T) {
		fx := newProjectRequestFixture(true)
		resp, err := fx.flow.SubmitCalculatorRequest(ctx, newReq(), nil)
		require.NoError(t, err)
		assert.Nil(t, resp.BudgetEstimate)
		require.Len(t, fx.repo.rows, 1)
		assert.Equal(t, int64(175000), *fx.repo.rows[0].BudgetEstimate)
		fx.flow.Wait()
	})

	t.Run("description is optional", func(t *testing.T) {
		fx := newProjectRequestFixture(false)
		req := newReq()
		req.ProjectDescription = ""
		_, err := fx.flow.SubmitCalculatorRequest(ctx, req, nil)
		require.NoError(t, err)
		fx.flow.Wait()
	})

	t.Run("invalid estimate", func(t *testing.T) {
		fx := newProjectRequestFixture(false)
		req := newReq()
		req.Estimate.NDA = "secret"
		_, err := fx.flow.SubmitCalculatorRequest(ctx, req, nil)
		assert.True(t, IsInvalidEstimateRequest(err))
		assert.Empty(t, fx.repo.rows)
	})

	t.Run("contact required", func(t *testing.T) {
		fx := newProjectRequestFixture(false)
		req := newReq()
		req.Email = nil
		_, err := fx.flow.SubmitCalculatorRequest(ctx, req, nil)
		assert.True(t, IsContactRequired(err))
	})
}

func seedRequests(t *testing.T, fx *projectRequestFixture, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := fx.flow.SubmitContactRequest(context.Background(), &dto.ContactRequest{
			Name: "Client", Email: utils.ToPtr("c@example.com"), ProjectDescription: "clip",
		}, nil)
		require.NoError(t, err)
	}
	fx.flow.Wait()
}

func TestProjectRequestFlow_AdminList(t *testing.T) {
	ctx := context.Background()
	fx := newProjectRequestFixture(false)
	seedRequests(t, fx, 5)
	_, err := fx.flow.SubmitCalculatorRequest(ctx, &dto.CalculatorProjectRequest{
		Name: "Calc", Telegram: utils.ToPtr("@calc"), Estimate: *defaultEstimate(),
	}, nil)
	require.NoError(t, err)
	fx.flow.Wait()

	t.Run("defaults", func(t *testing.T) {
		resp, err := fx.flow.AdminListProjectRequests(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(6), resp.Total)
		assert.Equal(t, 1, resp.Page)
		assert.Equal(t, utils.DefaultPageSize, resp.PageSize)
		assert.Len(t, resp.Items, 6)
		assert.Equal(t, "calculator", resp.Items[0].Source)
	})

	t.Run("pagination", func(t *testing.T) {
		resp, err := fx.flow.AdminListProjectRequests(ctx, &dto.AdminListProjectRequestsFilter{Page: 2, PageSize: 4})
		require.NoError(t, err)
		assert.Equal(t, int64(6), resp.Total)
		assert.Len(t, resp.Items, 2)
	})

	t.Run("source filter", func(t *testing.T) {
		resp, err := fx.flow.AdminListProjectRequests(ctx, &dto.AdminListProjectRequestsFilter{Source: "calculator"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.Total)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "Calc", resp.Items[0].Name)
	})

	t.Run("bad input", func(t *testing.T) {
		_, err := fx.flow.AdminListProjectRequests(ctx, &dto.AdminListProjectRequestsFilter{PageSize: 500})
		assert.True(t, IsInvalidPageSize(err))
		_, err = fx.flow.AdminListProjectRequests(ctx, &dto.AdminListProjectRequestsFilter{Page: -1})
		assert.True(t, IsInvalidPage(err))
		_, err = fx.flow.AdminListProjectRequests(ctx, &dto.AdminListProjectRequestsFilter{Status: "archived"})
		assert.ErrorIs(t, err, ErrInvalidProjectRequestQuery)
	})
}

func TestProjectRequestFlow_AdminUpdateStatus(t *testing.T) {
	ctx := context.Background()
	fx := newProjectRequestFixture(false)
	seedRequests(t, fx, 1)
	id := fx.repo.rows[0].UUID.String()

	resp, err := fx.flow.AdminUpdateProjectRequestStatus(ctx, id, &dto.AdminUpdateProjectRequestStatusRequest{Status: "in_progress"}, 1)
	require.NoError(t, err)
	assert.Equal(t, "in_progress", resp.Item.Status)
	assert.Equal(t, models.ProjectRequestStatusInProgress, fx.repo.rows[0].Status)

	resp, err = fx.flow.AdminUpdateProjectRequestStatus(ctx, id, &dto.AdminUpdateProjectRequestStatusRequest{Status: "in_progress"}, 1)
	require.NoError(t, err)
	assert.Equal(t, "Project request status unchanged", resp.Message)

	_, err = fx.flow.AdminUpdateProjectRequestStatus(ctx, id, &dto.AdminUpdateProjectRequestStatusRequest{Status: "new"}, 1)
	assert.True(t, IsInvalidStatusTransition(err))

	_, err = fx.flow.AdminUpdateProjectRequestStatus(ctx, id, &dto.AdminUpdateProjectRequestStatusRequest{Status: "archived"}, 1)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = fx.flow.AdminUpdateProjectRequestStatus(ctx, "not-a-uuid", &dto.AdminUpdateProjectRequestStatusRequest{Status: "done"}, 1)
	assert.ErrorIs(t, err, ErrInvalidProjectRequestID)

	_, err = fx.flow.AdminUpdateProjectRequestStatus(ctx, "6f1c1f7e-8d4e-4b8a-9a43-0c3c9a1a2b3c", &dto.AdminUpdateProjectRequestStatusRequest{Status: "done"}, 1)
	assert.True(t, IsProjectRequestNotFound(err))
}

func TestProjectRequestFlow_AdminExport(t *testing.T) {
	ctx := context.Background()
	fx := newProjectRequestFixture(false)
	seedRequests(t, fx, 2)
	_, err := fx.flow.SubmitCalculatorRequest(ctx, &dto.CalculatorProjectRequest{
		Name: "Calc", Telegram: utils.ToPtr("@calc"), Estimate: *defaultEstimate(),
	}, nil)
	require.NoError(t, err)
	fx.flow.Wait()

	resp, err := fx.flow.AdminExportProjectRequests(ctx, nil)
	require.NoError(t, err)
	assert.Regexp(t, `^project_requests_\d{8}_\d{6}\.xlsx$`, resp.Filename)

	xl, err := excelize.OpenReader(bytes.NewReader(resp.Data))
	require.NoError(t, err)
	defer func() { _ = xl.Close() }()

	rows, err := xl.GetRows("requests")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, projectRequestExportHeader, rows[0])
	assert.Equal(t, "calculator", rows[1][2])
	assert.Equal(t, "Calc", rows[1][4])
	assert.Equal(t, "true", rows[1][11])
	assert.Equal(t, "175000", rows[1][16])

	resp, err = fx.flow.AdminExportProjectRequests(ctx, &dto.AdminListProjectRequestsFilter{Source: "contact_form"})
	require.NoError(t, err)
	xl2, err := excelize.OpenReader(bytes.NewReader(resp.Data))
	require.NoError(t, err)
	defer func() { _ = xl2.Close() }()
	rows, err = xl2.GetRows("requests")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}
