package record

import "github.com/cariandrum22/Xanthos-sub000/pkg/ids"

// CornerPassage is the "CK" record: a corner-by-corner passage order.
type CornerPassage struct {
	RaceKey ids.RaceId
	HorseId ids.RunnerId
	Corner  int64
	Order   int64
}

func (CornerPassage) RecordKind() string { return "CK" }

// TimeSplit is the "CS" record: a sectional-time split.
type TimeSplit struct {
	RaceKey     ids.RaceId
	SplitIndex  int64
	SplitTimeMs int64
}

func (TimeSplit) RecordKind() string { return "CS" }

// CourseCorrection is the "CC" record: a distance/course-measurement
// correction notice.
type CourseCorrection struct {
	RaceKey ids.RaceId
	Note    string
}

func (CourseCorrection) RecordKind() string { return "CC" }

// HorseNote is the "HN" record: a free-text horse note (veterinary,
// equipment, etc).
type HorseNote struct {
	HorseId ids.RunnerId
	Note    string
}

func (HorseNote) RecordKind() string { return "HN" }

// HorseStatus is the "HS" record: a horse's current racing-eligibility
// status.
type HorseStatus struct {
	HorseId ids.RunnerId
	Status  string
}

func (HorseStatus) RecordKind() string { return "HS" }

// HorseHistory is the "HY" record: a past-performance line for one horse.
type HorseHistory struct {
	HorseId ids.RunnerId
	RaceKey ids.RaceId
	Finish  int64
}

func (HorseHistory) RecordKind() string { return "HY" }

// DiffMaster is the "DM" record: an incremental master-data diff marker.
type DiffMaster struct {
	EntityId string
	Deleted  bool
}

func (DiffMaster) RecordKind() string { return "DM" }

// HoldingCompany is the "HC" record: a race's holding organisation
// (JRA/NAR/overseas).
type HoldingCompany struct {
	RaceKey ids.RaceId
	Company string
}

func (HoldingCompany) RecordKind() string { return "HC" }

// ScheduleKey is the "SK" record: a meeting's schedule key (venue,
// kaiji, nichiji) independent of any one race.
type ScheduleKey struct {
	Venue  Venue
	Kaiji  int64
	Nichiji int64
	Date   string
}

func (ScheduleKey) RecordKind() string { return "SK" }

// YearSummary is the "YS" record: a season/year rollup record.
type YearSummary struct {
	Year int64
}

func (YearSummary) RecordKind() string { return "YS" }

// RecordCount is the "RC" record: an end-of-file record count trailer.
type RecordCount struct {
	Count int64
}

func (RecordCount) RecordKind() string { return "RC" }

// WorkoutClip is the shared shape of the three training-video kinds H1
// (Miho), H5 (Ritto), H6 (local tracks).
type WorkoutClip struct {
	Kind    string
	HorseId ids.RunnerId
	ClipURL string
}

func (w WorkoutClip) RecordKind() string { return w.Kind }

func init() {
	register(recordSpec{
		kind: "CK",
		fields: []FieldSpec{
			{Name: "RaceKey", Offset: 11, Length: 16, Encoding: Code},
			{Name: "HorseId", Offset: 27, Length: 10, Encoding: Code},
			{Name: "Corner", Offset: 37, Length: 1, Encoding: Integer},
			{Name: "Order", Offset: 38, Length: 2, Encoding: Integer},
		},
		required: []string{"RaceKey"},
		build: func(f map[string]FieldValue) (Record, error) {
			return CornerPassage{
				RaceKey: ids.NewRaceIdUnsafe(f["RaceKey"].Text),
				HorseId: ids.NewRunnerIdUnsafe(f["HorseId"].Text),
				Corner:  f["Corner"].Int,
				Order:   f["Order"].Int,
			}, nil
		},
	})

	register(recordSpec{
		kind: "CS",
		fields: []FieldSpec{
			{Name: "RaceKey", Offset: 11, Length: 16, Encoding: Code},
			{Name: "SplitIndex", Offset: 27, Length: 1, Encoding: Integer},
			{Name: "SplitTimeMs", Offset: 28, Length: 4, Encoding: Integer},
		},
		required: []string{"RaceKey"},
		build: func(f map[string]FieldValue) (Record, error) {
			return TimeSplit{
				RaceKey:     ids.NewRaceIdUnsafe(f["RaceKey"].Text),
				SplitIndex:  f["SplitIndex"].Int,
				SplitTimeMs: f["SplitTimeMs"].Int,
			}, nil
		},
	})

	register(recordSpec{
		kind: "CC",
		fields: []FieldSpec{
			{Name: "RaceKey", Offset: 11, Length: 16, Encoding: Code},
			{Name: "Note", Offset: 27, Length: 40, Encoding: Text},
		},
		required: []string{"RaceKey"},
		build: func(f map[string]FieldValue) (Record, error) {
			return CourseCorrection{RaceKey: ids.NewRaceIdUnsafe(f["RaceKey"].Text), Note: f["Note"].Text}, nil
		},
	})

	register(recordSpec{
		kind: "HN",
		fields: []FieldSpec{
			{Name: "HorseId", Offset: 2, Length: 10, Encoding: Code},
			{Name: "Note", Offset: 12, Length: 80, Encoding: Text},
		},
		required: []string{"HorseId"},
		build: func(f map[string]FieldValue) (Record, error) {
			return HorseNote{HorseId: ids.NewRunnerIdUnsafe(f["HorseId"].Text), Note: f["Note"].Text}, nil
		},
	})

	register(recordSpec{
		kind: "HS",
		fields: []FieldSpec{
			{Name: "HorseId", Offset: 2, Length: 10, Encoding: Code},
			{Name: "Status", Offset: 12, Length: 20, Encoding: Text},
		},
		required: []string{"HorseId"},
		build: func(f map[string]FieldValue) (Record, error) {
			return HorseStatus{HorseId: ids.NewRunnerIdUnsafe(f["HorseId"].Text), Status: f["Status"].Text}, nil
		},
	})

	register(recordSpec{
		kind: "HY",
		fields: []FieldSpec{
			{Name: "HorseId", Offset: 2, Length: 10, Encoding: Code},
			{Name: "RaceKey", Offset: 12, Length: 16, Encoding: Code},
			{Name: "Finish", Offset: 28, Length: 2, Encoding: Integer},
		},
		required: []string{"HorseId"},
		build: func(f map[string]FieldValue) (Record, error) {
			return HorseHistory{
				HorseId: ids.NewRunnerIdUnsafe(f["HorseId"].Text),
				RaceKey: ids.NewRaceIdUnsafe(f["RaceKey"].Text),
				Finish:  f["Finish"].Int,
			}, nil
		},
	})

	register(recordSpec{
		kind: "DM",
		fields: []FieldSpec{
			{Name: "EntityId", Offset: 2, Length: 10, Encoding: Code},
			{Name: "Deleted", Offset: 12, Length: 1, Encoding: Flag},
		},
		required: []string{"EntityId"},
		build: func(f map[string]FieldValue) (Record, error) {
			return DiffMaster{EntityId: f["EntityId"].Text, Deleted: f["Deleted"].Flag}, nil
		},
	})

	register(recordSpec{
		kind: "HC",
		fields: []FieldSpec{
			{Name: "RaceKey", Offset: 11, Length: 16, Encoding: Code},
			{Name: "Company", Offset: 27, Length: 20, Encoding: Text},
		},
		required: []string{"RaceKey"},
		build: func(f map[string]FieldValue) (Record, error) {
			return HoldingCompany{RaceKey: ids.NewRaceIdUnsafe(f["RaceKey"].Text), Company: f["Company"].Text}, nil
		},
	})

	register(recordSpec{
		kind: "SK",
		fields: []FieldSpec{
			{Name: "Venue", Offset: 2, Length: 2, Encoding: Code},
			{Name: "Kaiji", Offset: 4, Length: 2, Encoding: Integer},
			{Name: "Nichiji", Offset: 6, Length: 2, Encoding: Integer},
			{Name: "Date", Offset: 8, Length: 8, Encoding: Code},
		},
		required: []string{"Date"},
		build: func(f map[string]FieldValue) (Record, error) {
			return ScheduleKey{
				Venue:   ParseVenue(f["Venue"].Text),
				Kaiji:   f["Kaiji"].Int,
				Nichiji: f["Nichiji"].Int,
				Date:    f["Date"].Text,
			}, nil
		},
	})

	register(recordSpec{
		kind: "YS",
		fields: []FieldSpec{
			{Name: "Year", Offset: 2, Length: 4, Encoding: Integer},
		},
		required: []string{"Year"},
		build: func(f map[string]FieldValue) (Record, error) {
			return YearSummary{Year: f["Year"].Int}, nil
		},
	})

	register(recordSpec{
		kind: "RC",
		fields: []FieldSpec{
			{Name: "Count", Offset: 2, Length: 10, Encoding: Integer},
		},
		required: []string{"Count"},
		build: func(f map[string]FieldValue) (Record, error) {
			return RecordCount{Count: f["Count"].Int}, nil
		},
	})

	for _, kind := range []string{"H1", "H5", "H6"} {
		k := kind
		register(recordSpec{
			kind: k,
			fields: []FieldSpec{
				{Name: "HorseId", Offset: 2, Length: 10, Encoding: Code},
				{Name: "ClipURL", Offset: 12, Length: 128, Encoding: TextRaw},
			},
			required: []string{"HorseId"},
			build: func(f map[string]FieldValue) (Record, error) {
				return WorkoutClip{Kind: k, HorseId: ids.NewRunnerIdUnsafe(f["HorseId"].Text), ClipURL: f["ClipURL"].Text}, nil
			},
		})
	}
}
