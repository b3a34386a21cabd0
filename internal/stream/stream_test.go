package stream

import (
	"context"
	"reflect"
	"strings"
	"testing"
)

func TestBatchSizesEmptyTotal(t *testing.T) {
	if got := batchSizes(0, 100, 1000, 50, 500); got != nil {
		t.Fatalf("batchSizes(0, ...) = %v, want nil", got)
	}
}

func TestBatchSizesSingleBatchUnderThreshold(t *testing.T) {
	got := batchSizes(1000, 500, 2<<20, 50, 500)
	want := []int{1000}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("batchSizes() = %v, want %v (file under size threshold collapses to one batch)", got, want)
	}
}

func TestBatchSizesDoublingCappedAtMax(t *testing.T) {
	got := batchSizes(1200, 3<<20, 2<<20, 50, 500)
	want := []int{50, 100, 200, 400, 450}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("batchSizes() = %v, want %v", got, want)
	}
}

// s1Fixture is the "empty project header only" scenario, shared with
// internal/model's own S1 test.
const s1Fixture = `ISO-10303-21;
HEADER;
FILE_DESCRIPTION(('x'),'2;1');
FILE_NAME('a','',(''),(''),'','','');
FILE_SCHEMA(('IFC4'));
ENDSEC;
DATA;
#1=IFCPROJECT('0YvctVUKr0kugbFTf53O9L',$,'P',$,$,$,(#2),#3);
#2=IFCUNITASSIGNMENT((#4));
ENDSEC;
END-ISO-10303-21;
`

func collect(seq func(func(Event) bool)) []Event {
	var events []Event
	for ev := range seq {
		events = append(events, ev)
	}
	return events
}

func kinds(events []Event) []Kind {
	out := make([]Kind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

func TestRunEmptyProjectEmitsExpectedSequence(t *testing.T) {
	events := collect(Run(context.Background(), []byte(s1Fixture), DefaultOptions()))
	got := kinds(events)
	want := []Kind{
		KindStarted,
		KindIndexed,
		KindEntityBatch,
		KindProgress,
		KindProgress,
		KindPropertiesReady,
		KindRelationshipsReady,
		KindSpatialHierarchyReady,
		KindProgress,
		KindProgress,
		KindCompleted,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("event kinds = %v, want %v", got, want)
	}
	last := events[len(events)-1]
	if last.Geometry == nil {
		t.Fatal("Completed event missing Geometry result")
	}
}

func TestRunMalformedDataYieldsError(t *testing.T) {
	events := collect(Run(context.Background(), []byte("not a step file"), DefaultOptions()))
	if len(events) < 2 {
		t.Fatalf("len(events) = %d, want at least Started+Error", len(events))
	}
	last := events[len(events)-1]
	if last.Kind != KindError {
		t.Fatalf("last event kind = %v, want KindError", last.Kind)
	}
	if last.Message == "" {
		t.Fatal("Error event has empty Message")
	}
}

func TestRunCancelledContextStopsAfterIndexed(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	events := collect(Run(ctx, []byte(s1Fixture), DefaultOptions()))
	got := kinds(events)
	want := []Kind{KindStarted, KindIndexed, KindError}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("event kinds = %v, want %v", got, want)
	}
	last := events[len(events)-1]
	if !strings.Contains(last.Message, "context canceled") {
		t.Fatalf("Error message = %q, want it to mention context cancellation", last.Message)
	}
}

func TestRunStopsIteratingWhenCallerBreaksEarly(t *testing.T) {
	var events []Event
	for ev := range Run(context.Background(), []byte(s1Fixture), DefaultOptions()) {
		events = append(events, ev)
		if ev.Kind == KindIndexed {
			break
		}
	}
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2 (Started, Indexed) after an early break", len(events))
	}
}

func TestChordToleranceForQualityTiers(t *testing.T) {
	if chordToleranceFor(QualityFast) <= chordToleranceFor(QualityBalanced) {
		t.Fatal("fast quality should have a looser (larger) chord tolerance than balanced")
	}
	if chordToleranceFor(QualityHigh) >= chordToleranceFor(QualityBalanced) {
		t.Fatal("high quality should have a tighter (smaller) chord tolerance than balanced")
	}
}

func TestOptionsResolvedFillsZeroDefaults(t *testing.T) {
	got := Options{}.resolved()
	want := DefaultOptions()
	if got.SizeThresholdBytes != want.SizeThresholdBytes ||
		got.InitialBatchSize != want.InitialBatchSize ||
		got.MaxBatchSize != want.MaxBatchSize ||
		got.CoordinateShiftThreshold != want.CoordinateShiftThreshold {
		t.Fatalf("resolved() = %+v, want defaults filled in like %+v", got, want)
	}
}
