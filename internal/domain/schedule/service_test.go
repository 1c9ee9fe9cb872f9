package schedule_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brightertomorrows/website-backend/internal/domain/schedule"
)

func TestAdd_DefaultsSessionsFromParts(t *testing.T) {
	svc := newService(t)
	sch := &schedule.Schedule{}

	// mind-over-matter is a two-part program.
	err := svc.Add(sch, schedule.AddRequest{
		ProgramID: "mind-over-matter",
		Versions:  []string{"Gr. 4-6"},
		Delivery:  schedule.DeliveryVirtual,
	})
	require.NoError(t, err)
	require.Equal(t, 2, sch.Items[0].Sessions)

	err = svc.Add(sch, schedule.AddRequest{
		ProgramID: "beyond-the-screen",
		Versions:  []string{"Gr. 4-6"},
		Delivery:  schedule.DeliveryVirtual,
	})
	require.NoError(t, err)
	require.Equal(t, 1, sch.Items[1].Sessions)
}

func TestAdd_RejectsDuplicateProgram(t *testing.T) {
	svc := newService(t)
	sch := &schedule.Schedule{}

	req := schedule.AddRequest{
		ProgramID: "mind-over-matter",
		Versions:  []string{"Gr. 4-6"},
		Delivery:  schedule.DeliveryVirtual,
	}
	require.NoError(t, svc.Add(sch, req))
	require.ErrorIs(t, svc.Add(sch, req), schedule.ErrAlreadyScheduled)
	require.Len(t, sch.Items, 1)
}

func TestAdd_RejectsBadInput(t *testing.T) {
	svc := newService(t)
	sch := &schedule.Schedule{}

	err := svc.Add(sch, schedule.AddRequest{
		ProgramID: "no-such-program",
		Versions:  []string{"Gr. 4-6"},
		Delivery:  schedule.DeliveryVirtual,
	})
	require.ErrorIs(t, err, schedule.ErrProgramNotFound)

	err = svc.Add(sch, schedule.AddRequest{
		ProgramID: "mind-over-matter",
		Versions:  nil,
		Delivery:  schedule.DeliveryVirtual,
	})
	require.ErrorIs(t, err, schedule.ErrInvalidVersions)

	// Version the program does not offer.
	err = svc.Add(sch, schedule.AddRequest{
		ProgramID: "mind-over-matter",
		Versions:  []string{"K-3"},
		Delivery:  schedule.DeliveryVirtual,
	})
	require.ErrorIs(t, err, schedule.ErrInvalidVersions)

	err = svc.Add(sch, schedule.AddRequest{
		ProgramID: "mind-over-matter",
		Versions:  []string{"Gr. 4-6"},
		Delivery:  "carrier-pigeon",
	})
	require.ErrorIs(t, err, schedule.ErrInvalidDelivery)
}

func TestRemove_PreservesOrder(t *testing.T) {
	svc := newService(t)
	sch := &schedule.Schedule{}

	for _, id := range []string{"mind-over-matter", "beyond-the-screen", "stronger-together"} {
		require.NoError(t, svc.Add(sch, schedule.AddRequest{
			ProgramID: id,
			Versions:  []string{"Gr. 9-10"},
			Delivery:  schedule.DeliveryVirtual,
		}))
	}

	require.NoError(t, svc.Remove(sch, "beyond-the-screen"))
	require.Len(t, sch.Items, 2)
	require.Equal(t, "mind-over-matter", sch.Items[0].ProgramID)
	require.Equal(t, "stronger-together", sch.Items[1].ProgramID)

	require.ErrorIs(t, svc.Remove(sch, "beyond-the-screen"), schedule.ErrNotScheduled)
}

func TestMutations(t *testing.T) {
	svc := newService(t)
	sch := &schedule.Schedule{}

	require.NoError(t, svc.Add(sch, schedule.AddRequest{
		ProgramID: "mind-over-matter",
		Versions:  []string{"Gr. 4-6"},
		Delivery:  schedule.DeliveryVirtual,
	}))

	require.NoError(t, svc.UpdateVersions(sch, "mind-over-matter", []string{"Gr. 7-8", "Gr. 9-10"}))
	require.Equal(t, []string{"Gr. 7-8", "Gr. 9-10"}, sch.Items[0].Versions)

	require.NoError(t, svc.SetDelivery(sch, "mind-over-matter", schedule.DeliveryInPerson))
	require.Equal(t, schedule.DeliveryInPerson, sch.Items[0].Delivery)

	require.NoError(t, svc.SetSessions(sch, "mind-over-matter", 3))
	require.Equal(t, 3, sch.Items[0].Sessions)
	require.ErrorIs(t, svc.SetSessions(sch, "mind-over-matter", 0), schedule.ErrInvalidSessions)

	require.NoError(t, svc.SetNotes(sch, "mind-over-matter", "morning assembly preferred"))
	require.Equal(t, "morning assembly preferred", sch.Items[0].Notes)

	svc.Clear(sch)
	require.Empty(t, sch.Items)
}

func TestCompatibility_EmptyScheduleAllCompatible(t *testing.T) {
	svc := newService(t)
	flags := svc.Compatibility(&schedule.Schedule{})
	require.NotEmpty(t, flags)
	for id, flag := range flags {
		require.Equal(t, schedule.FlagCompatible, flag, "program %s", id)
	}
}

func TestCompatibility_YoungOnlyExcludesHighSchool(t *testing.T) {
	svc := newService(t)
	sch := &schedule.Schedule{}
	require.NoError(t, svc.Add(sch, schedule.AddRequest{
		ProgramID: "little-minds-big-feelings",
		Versions:  []string{"K-3"},
		Delivery:  schedule.DeliveryInPerson,
	}))

	flags := svc.Compatibility(sch)
	require.Equal(t, schedule.FlagAdded, flags["little-minds-big-feelings"])
	// Offers only Gr. 9-10 / Gr. 11-12 versions.
	require.Equal(t, schedule.FlagIncompatible, flags["finding-your-footing"])
}

func TestCompatibility_SharedBucketIsCompatible(t *testing.T) {
	svc := newService(t)
	sch := &schedule.Schedule{}
	require.NoError(t, svc.Add(sch, schedule.AddRequest{
		ProgramID: "mind-over-matter",
		Versions:  []string{"Gr. 9-10"},
		Delivery:  schedule.DeliveryVirtual,
	}))

	flags := svc.Compatibility(sch)
	require.Equal(t, schedule.FlagCompatible, flags["finding-your-footing"])
	require.Equal(t, schedule.FlagCompatible, flags["stronger-together"])
	require.Equal(t, schedule.FlagIncompatible, flags["little-minds-big-feelings"])
	require.Equal(t, schedule.FlagIncompatible, flags["caring-for-the-caregivers"])
}
