package schedule

import "github.com/brightertomorrows/website-backend/internal/domain/catalog"

// Compatibility returns a flag for every catalog program. Programs already in
// the schedule are "added". With an empty schedule everything is compatible.
// Otherwise a program is compatible when it offers at least one version in an
// audience bucket already touched by the schedule. This is a coarse nudge
// away from mixing wildly different audiences, not a strict rule.
func (s *Service) Compatibility(sch *Schedule) map[string]CompatFlag {
	touched := s.touchedAudiences(sch)

	flags := make(map[string]CompatFlag)
	for _, prog := range s.catalog.All() {
		if sch.Find(prog.ID) >= 0 {
			flags[prog.ID] = FlagAdded
			continue
		}
		if len(sch.Items) == 0 {
			flags[prog.ID] = FlagCompatible
			continue
		}
		flags[prog.ID] = FlagIncompatible
		for _, v := range prog.Versions {
			if v.Audience != catalog.AudienceUnknown && touched[v.Audience] {
				flags[prog.ID] = FlagCompatible
				break
			}
		}
	}
	return flags
}

// touchedAudiences unions the buckets of every selected version across the
// schedule. Unknown buckets are ignored; they never match anything.
func (s *Service) touchedAudiences(sch *Schedule) map[catalog.Audience]bool {
	touched := make(map[catalog.Audience]bool)
	for _, item := range sch.Items {
		prog, ok := s.catalog.Get(item.ProgramID)
		if !ok {
			continue
		}
		for _, tag := range item.Versions {
			a := prog.VersionAudience(tag)
			if a != catalog.AudienceUnknown {
				touched[a] = true
			}
		}
	}
	return touched
}
