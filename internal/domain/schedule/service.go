package schedule

import (
	"log/slog"

	"github.com/brightertomorrows/website-backend/internal/domain/catalog"
)

// Service validates schedule mutations against the catalog and derives
// compatibility flags and cost estimates. It holds no schedule state itself.
type Service struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// NewService creates a schedule service over the program catalog.
func NewService(c *catalog.Catalog, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{catalog: c, logger: logger}
}

// AddRequest describes adding a program to a schedule.
type AddRequest struct {
	ProgramID string
	Versions  []string
	Delivery  Delivery
	// Sessions of 0 means use the program default: 2 for two-part
	// programs, otherwise 1.
	Sessions int
	Notes    string
}

// Add appends a new item for a program not yet in the schedule.
func (s *Service) Add(sch *Schedule, req AddRequest) error {
	prog, ok := s.catalog.Get(req.ProgramID)
	if !ok {
		return ErrProgramNotFound
	}
	if sch.Find(req.ProgramID) >= 0 {
		return ErrAlreadyScheduled
	}
	if err := validateVersions(prog, req.Versions); err != nil {
		return err
	}
	if !ValidDelivery(req.Delivery) {
		return ErrInvalidDelivery
	}

	sessions := req.Sessions
	if sessions == 0 {
		sessions = 1
		if prog.HasParts {
			sessions = 2
		}
	}
	if sessions < 1 {
		return ErrInvalidSessions
	}

	sch.Items = append(sch.Items, Item{
		ProgramID: req.ProgramID,
		Versions:  append([]string(nil), req.Versions...),
		Delivery:  req.Delivery,
		Sessions:  sessions,
		Notes:     req.Notes,
	})
	return nil
}

// Remove deletes the item for a program, preserving the order of the rest.
func (s *Service) Remove(sch *Schedule, programID string) error {
	i := sch.Find(programID)
	if i < 0 {
		return ErrNotScheduled
	}
	sch.Items = append(sch.Items[:i], sch.Items[i+1:]...)
	return nil
}

// UpdateVersions replaces an item's version selection.
func (s *Service) UpdateVersions(sch *Schedule, programID string, versions []string) error {
	i := sch.Find(programID)
	if i < 0 {
		return ErrNotScheduled
	}
	prog, ok := s.catalog.Get(programID)
	if !ok {
		return ErrProgramNotFound
	}
	if err := validateVersions(prog, versions); err != nil {
		return err
	}
	sch.Items[i].Versions = append([]string(nil), versions...)
	return nil
}

// SetDelivery changes an item's delivery method.
func (s *Service) SetDelivery(sch *Schedule, programID string, d Delivery) error {
	i := sch.Find(programID)
	if i < 0 {
		return ErrNotScheduled
	}
	if !ValidDelivery(d) {
		return ErrInvalidDelivery
	}
	sch.Items[i].Delivery = d
	return nil
}

// SetSessions changes an item's session count.
func (s *Service) SetSessions(sch *Schedule, programID string, sessions int) error {
	i := sch.Find(programID)
	if i < 0 {
		return ErrNotScheduled
	}
	if sessions < 1 {
		return ErrInvalidSessions
	}
	sch.Items[i].Sessions = sessions
	return nil
}

// SetNotes replaces an item's free-text notes.
func (s *Service) SetNotes(sch *Schedule, programID, notes string) error {
	i := sch.Find(programID)
	if i < 0 {
		return ErrNotScheduled
	}
	sch.Items[i].Notes = notes
	return nil
}

// Clear empties the schedule.
func (s *Service) Clear(sch *Schedule) {
	sch.Items = nil
}

// Validate checks an externally supplied schedule, so handlers can accept a
// whole schedule document in one request.
func (s *Service) Validate(sch *Schedule) error {
	seen := make(map[string]bool, len(sch.Items))
	for _, item := range sch.Items {
		prog, ok := s.catalog.Get(item.ProgramID)
		if !ok {
			return ErrProgramNotFound
		}
		if seen[item.ProgramID] {
			return ErrAlreadyScheduled
		}
		seen[item.ProgramID] = true
		if err := validateVersions(prog, item.Versions); err != nil {
			return err
		}
		if !ValidDelivery(item.Delivery) {
			return ErrInvalidDelivery
		}
		if item.Sessions < 1 {
			return ErrInvalidSessions
		}
	}
	return nil
}

func validateVersions(prog catalog.Program, versions []string) error {
	if len(versions) == 0 {
		return ErrInvalidVersions
	}
	seen := make(map[string]bool, len(versions))
	for _, tag := range versions {
		if !prog.HasVersion(tag) || seen[tag] {
			return ErrInvalidVersions
		}
		seen[tag] = true
	}
	return nil
}
