package track

import (
	"reflect"
	"testing"

	"github.com/hazadus/go-confplan/internal/schedule"
)

func TestListTracks(t *testing.T) {
	snapshot := &schedule.Schedule{
		Days: []schedule.Day{
			{Date: "2016-06-01", Sessions: []schedule.Session{
				{Name: "a", Track: "Go"},
				{Name: "b", Track: "Web"},
				{Name: "c"},
			}},
			{Date: "2016-06-02", Sessions: []schedule.Session{
				{Name: "d", Track: "Go"},
			}},
		},
	}
	snapshot.Normalize()

	manager := NewManager(snapshot)
	tracks := manager.ListTracks(schedule.NewNameSet("Web"))

	want := []Track{
		{Name: "Go", Sessions: 2},
		{Name: "Web", Sessions: 1, Excluded: true},
	}
	if !reflect.DeepEqual(tracks, want) {
		t.Errorf("Ожидалось %+v, получено %+v", want, tracks)
	}

	if got := Excluded(tracks); !reflect.DeepEqual(got, []string{"Web"}) {
		t.Errorf("Excluded = %v", got)
	}
}

func TestListTracksNilSchedule(t *testing.T) {
	manager := NewManager(nil)
	if tracks := manager.ListTracks(nil); tracks != nil {
		t.Errorf("Ожидался nil, получено %v", tracks)
	}
}

func TestExcludedEmpty(t *testing.T) {
	got := Excluded([]Track{{Name: "Go"}})
	if got == nil || len(got) != 0 {
		t.Errorf("Ожидался пустой срез, а не nil, получено %#v", got)
	}
}
