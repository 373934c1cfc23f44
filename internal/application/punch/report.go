package punch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/punchlist-api/internal/domain"
	"github.com/jhoicas/punchlist-api/internal/domain/punchlist"
	"github.com/jhoicas/punchlist-api/internal/domain/repository"
	"github.com/jhoicas/punchlist-api/pkg/logger"
)

// ReportUseCase exporta la vista filtrada de un proyecto a PDF.
type ReportUseCase struct {
	items     repository.PunchItemRepository
	projects  repository.ProjectRepository
	generator ReportGenerator
	log       *logger.Logger
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso de exportación.
func NewReportUseCase(items repository.PunchItemRepository, projects repository.ProjectRepository, generator ReportGenerator, log *logger.Logger) *ReportUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ReportUseCase{items: items, projects: projects, generator: generator, log: log.Component("report"), now: time.Now}
}

// Export genera el PDF de la vista filtrada y su nombre de archivo.
func (uc *ReportUseCase) Export(ctx context.Context, actor Actor, projectID string, f punchlist.ViewFilter) ([]byte, string, error) {
	if !actor.IsGC() {
		return nil, "", domain.ErrForbidden
	}
	project, err := LoadCompanyProject(ctx, uc.projects, actor.CompanyID, projectID)
	if err != nil {
		return nil, "", err
	}
	items, err := uc.items.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, "", fmt.Errorf("listar ítems: %w", err)
	}
	visible := punchlist.ApplyView(items, f)
	now := uc.now()

	pdf, err := uc.generator.Generate(ctx, Report{
		ProjectName: project.Name,
		GeneratedAt: now,
		Filter:      f,
		Summary:     punchlist.Summarize(visible),
		Items:       visible,
	})
	if err != nil {
		return nil, "", fmt.Errorf("generar reporte: %w", err)
	}
	uc.log.Info().Str("project_id", project.ID).Int("items", len(visible)).Int("bytes", len(pdf)).Msg("reporte generado")
	return pdf, ReportFilename(project.Name, now), nil
}

// ReportFilename punchlist_{nombre saneado}_{YYYY-MM-DD}.pdf, con la fecha en UTC.
func ReportFilename(projectName string, at time.Time) string {
	return fmt.Sprintf("punchlist_%s_%s.pdf", SanitizeFilename(projectName), at.UTC().Format("2006-01-02"))
}

// SanitizeFilename reemplaza todo lo que no sea [A-Za-z0-9] por '_' y pasa a minúsculas.
func SanitizeFilename(name string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		}
		return '_'
	}, name)
	return cases.Lower(language.Und).String(mapped)
}
