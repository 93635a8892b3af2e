package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/yukikurage/task-notes-api/internal/auth"
	"github.com/yukikurage/task-notes-api/internal/constants"
	"github.com/yukikurage/task-notes-api/internal/logger"
	"github.com/yukikurage/task-notes-api/internal/repository"
	"github.com/yukikurage/task-notes-api/internal/result"
)

var ErrAIServiceNotConfigured = errors.New("AI service is not configured")

// SummaryService enriches tasks with a generated summary.
//
// The task is read, the generator is called, and the summary is written back
// with no lock or version check in between. An edit that lands while the
// generator is running is overwritten by a summary of the old content.
type SummaryService struct {
	taskRepo  repository.TaskRepository
	generator TextGenerator
	log       *logger.Logger
}

// NewSummaryService creates a SummaryService. generator may be nil when no AI
// backend is configured; every call then fails with ENRICHMENT_FAILED.
func NewSummaryService(taskRepo repository.TaskRepository, generator TextGenerator, log *logger.Logger) *SummaryService {
	return &SummaryService{
		taskRepo:  taskRepo,
		generator: generator,
		log:       log.With("service", "SummaryService"),
	}
}

// Configured reports whether a generator is available.
func (s *SummaryService) Configured() bool {
	return s.generator != nil
}

// SummarizeTask makes one generation attempt and stores the result. On any
// generator failure the existing summary is left untouched.
func (s *SummaryService) SummarizeTask(ctx context.Context, actor auth.Actor, taskID uuid.UUID) result.Result {
	ownerID, err := auth.RequireUser(actor)
	if err != nil {
		return result.Fail(err)
	}

	ctx = detach(ctx)
	log := s.log.With("user_id", ownerID, "task_id", taskID)

	task, err := s.taskRepo.FindOwned(ctx, taskID, ownerID)
	if err != nil {
		log.Warn("summary source read failed", "error", err)
		return result.Fail(result.Wrap(result.KindNotFoundOrForbidden, err))
	}

	if s.generator == nil {
		return result.Fail(&result.Failure{
			Kind:    result.KindEnrichmentFailed,
			Message: "AI service is not configured",
			Err:     ErrAIServiceNotConfigured,
		})
	}

	summary, err := s.generator.Generate(ctx, BuildSummaryPrompt(task.Title, task.Description))
	if err == nil && strings.TrimSpace(summary) == "" {
		err = ErrEmptyCompletion
	}
	if err != nil {
		log.Warn("summary generation failed", "error", err)
		return result.Fail(result.Wrap(result.KindEnrichmentFailed, err))
	}
	summary = strings.TrimSpace(summary)

	n, err := s.taskRepo.UpdateOwned(ctx, taskID, ownerID, map[string]any{
		"summary": summary,
	})
	if err != nil {
		log.Error("failed to store summary", "error", err)
		return result.Fail(result.Wrap(result.KindPersistence, err))
	}
	if n == 0 {
		// Deleted while the generator was running.
		return result.Fail(result.ErrNotFoundOrForbidden)
	}

	log.Info("task summarized", "summary_length", len(summary))
	return result.Success(taskID)
}

// BuildSummaryPrompt renders the enrichment prompt. The description line is
// included only when the description has non-blank text.
func BuildSummaryPrompt(title string, description *string) string {
	var b strings.Builder
	b.WriteString(constants.SummaryInstruction)
	b.WriteString("\n\nTitle: ")
	b.WriteString(title)
	if description != nil && strings.TrimSpace(*description) != "" {
		b.WriteString("\nDescription: ")
		b.WriteString(*description)
	}
	return b.String()
}
