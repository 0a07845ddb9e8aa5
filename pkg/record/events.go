package record

import "github.com/cariandrum22/Xanthos-sub000/pkg/ids"

// JockeyChange is the "JC" record: a late jockey substitution.
type JockeyChange struct {
	RaceKey    ids.RaceId
	HorseId    ids.RunnerId
	NewJockey  string
}

// RecordKind implements Record.
func (JockeyChange) RecordKind() string { return "JC" }

// WeightChange is the "JG" record: a carried-weight (handicap) change.
type WeightChange struct {
	RaceKey  ids.RaceId
	HorseId  ids.RunnerId
	WeightKg int64
}

// RecordKind implements Record.
func (WeightChange) RecordKind() string { return "JG" }

// CourseChange is the "TC" record: a track/course substitution notice.
type CourseChange struct {
	RaceKey ids.RaceId
	Surface TrackSurface
}

// RecordKind implements Record.
func (CourseChange) RecordKind() string { return "TC" }

// WeatherChange is the "WE" record: a weather revision for a race day.
type WeatherChange struct {
	RaceKey   ids.RaceId
	Condition TrackCondition
}

// RecordKind implements Record.
func (WeatherChange) RecordKind() string { return "WE" }

// StartTimeChange is the "WF" record: a post-time revision.
type StartTimeChange struct {
	RaceKey  ids.RaceId
	NewStart string
}

// RecordKind implements Record.
func (StartTimeChange) RecordKind() string { return "WF" }

// RaceOrderChange is the "WH" record: a running-order revision.
type RaceOrderChange struct {
	RaceKey ids.RaceId
	NewOrder int64
}

// RecordKind implements Record.
func (RaceOrderChange) RecordKind() string { return "WH" }

// AvoidedRace is the "AV" record: a race abandoned or avoided entirely.
type AvoidedRace struct {
	RaceKey ids.RaceId
	Reason  string
}

// RecordKind implements Record.
func (AvoidedRace) RecordKind() string { return "AV" }

func init() {
	register(recordSpec{
		kind: "JC",
		fields: []FieldSpec{
			{Name: "RaceKey", Offset: 11, Length: 16, Encoding: Code},
			{Name: "HorseId", Offset: 27, Length: 10, Encoding: Code},
			{Name: "NewJockey", Offset: 37, Length: 5, Encoding: Code},
		},
		required: []string{"RaceKey"},
		build: func(f map[string]FieldValue) (Record, error) {
			return JockeyChange{
				RaceKey:   ids.NewRaceIdUnsafe(f["RaceKey"].Text),
				HorseId:   ids.NewRunnerIdUnsafe(f["HorseId"].Text),
				NewJockey: f["NewJockey"].Text,
			}, nil
		},
	})

	register(recordSpec{
		kind: "JG",
		fields: []FieldSpec{
			{Name: "RaceKey", Offset: 11, Length: 16, Encoding: Code},
			{Name: "HorseId", Offset: 27, Length: 10, Encoding: Code},
			{Name: "WeightKg", Offset: 37, Length: 3, Encoding: Integer},
		},
		required: []string{"RaceKey"},
		build: func(f map[string]FieldValue) (Record, error) {
			return WeightChange{
				RaceKey:  ids.NewRaceIdUnsafe(f["RaceKey"].Text),
				HorseId:  ids.NewRunnerIdUnsafe(f["HorseId"].Text),
				WeightKg: f["WeightKg"].Int,
			}, nil
		},
	})

	register(recordSpec{
		kind: "TC",
		fields: []FieldSpec{
			{Name: "RaceKey", Offset: 11, Length: 16, Encoding: Code},
			{Name: "Surface", Offset: 27, Length: 1, Encoding: Code},
		},
		required: []string{"RaceKey"},
		build: func(f map[string]FieldValue) (Record, error) {
			return CourseChange{RaceKey: ids.NewRaceIdUnsafe(f["RaceKey"].Text), Surface: ParseTrackSurface(f["Surface"].Text)}, nil
		},
	})

	register(recordSpec{
		kind: "WE",
		fields: []FieldSpec{
			{Name: "RaceKey", Offset: 11, Length: 16, Encoding: Code},
			{Name: "Condition", Offset: 27, Length: 3, Encoding: Code},
		},
		required: []string{"RaceKey"},
		build: func(f map[string]FieldValue) (Record, error) {
			return WeatherChange{RaceKey: ids.NewRaceIdUnsafe(f["RaceKey"].Text), Condition: ParseTrackCondition(f["Condition"].Text)}, nil
		},
	})

	register(recordSpec{
		kind: "WF",
		fields: []FieldSpec{
			{Name: "RaceKey", Offset: 11, Length: 16, Encoding: Code},
			{Name: "NewStart", Offset: 27, Length: 4, Encoding: Code},
		},
		required: []string{"RaceKey"},
		build: func(f map[string]FieldValue) (Record, error) {
			return StartTimeChange{RaceKey: ids.NewRaceIdUnsafe(f["RaceKey"].Text), NewStart: f["NewStart"].Text}, nil
		},
	})

	register(recordSpec{
		kind: "WH",
		fields: []FieldSpec{
			{Name: "RaceKey", Offset: 11, Length: 16, Encoding: Code},
			{Name: "NewOrder", Offset: 27, Length: 2, Encoding: Integer},
		},
		required: []string{"RaceKey"},
		build: func(f map[string]FieldValue) (Record, error) {
			return RaceOrderChange{RaceKey: ids.NewRaceIdUnsafe(f["RaceKey"].Text), NewOrder: f["NewOrder"].Int}, nil
		},
	})

	register(recordSpec{
		kind: "AV",
		fields: []FieldSpec{
			{Name: "RaceKey", Offset: 11, Length: 16, Encoding: Code},
			{Name: "Reason", Offset: 27, Length: 40, Encoding: Text},
		},
		required: []string{"RaceKey"},
		build: func(f map[string]FieldValue) (Record, error) {
			return AvoidedRace{RaceKey: ids.NewRaceIdUnsafe(f["RaceKey"].Text), Reason: f["Reason"].Text}, nil
		},
	})
}
