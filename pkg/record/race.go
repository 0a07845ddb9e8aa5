package record

import "github.com/cariandrum22/Xanthos-sub000/pkg/ids"

// RaceDetail is the "RA" record: the race card header for one race.
type RaceDetail struct {
	RaceKey     ids.RaceId
	RaceName    string
	Venue       Venue
	Grade       Grade
	Condition   RaceCondition
	Surface     TrackSurface
	DistanceM   int64
	HeadCount   int64
}

// RecordKind implements Record.
func (RaceDetail) RecordKind() string { return "RA" }

// RunnerEntry is the "SE" record: one runner's entry in a race.
type RunnerEntry struct {
	RaceKey    ids.RaceId
	HorseId    ids.RunnerId
	HorseName  string
	Sex        Sex
	HairColour HairColour
	WeightKg   int64
	JockeyCode string
	Style      RunningStyle
}

// RecordKind implements Record.
func (RunnerEntry) RecordKind() string { return "SE" }

// RaceChange is the "TK" record: a scratch/substitution notice issued
// after entries close.
type RaceChange struct {
	RaceKey ids.RaceId
	Reason  string
}

// RecordKind implements Record.
func (RaceChange) RecordKind() string { return "TK" }

// Payoff is the "HR" record: the confirmed payoff schedule for a race.
type Payoff struct {
	RaceKey    ids.RaceId
	WinPayoff  int64
	PlacePayoff int64
}

// RecordKind implements Record.
func (Payoff) RecordKind() string { return "HR" }

func init() {
	register(recordSpec{
		kind: "RA",
		fields: []FieldSpec{
			{Name: "RaceKey", Offset: 11, Length: 16, Encoding: Code},
			{Name: "RaceName", Offset: 27, Length: 60, Encoding: Text},
			{Name: "Venue", Offset: 87, Length: 2, Encoding: Code},
			{Name: "Grade", Offset: 89, Length: 1, Encoding: Code},
			{Name: "Condition", Offset: 90, Length: 3, Encoding: Code},
			{Name: "Surface", Offset: 93, Length: 1, Encoding: Code},
			{Name: "DistanceM", Offset: 94, Length: 4, Encoding: Integer},
			{Name: "HeadCount", Offset: 98, Length: 2, Encoding: Integer},
		},
		required: []string{"RaceKey", "RaceName"},
		build: func(f map[string]FieldValue) (Record, error) {
			raceKey := ids.NewRaceIdUnsafe(f["RaceKey"].Text)
			return RaceDetail{
				RaceKey:   raceKey,
				RaceName:  f["RaceName"].Text,
				Venue:     ParseVenue(f["Venue"].Text),
				Grade:     ParseGrade(f["Grade"].Text),
				Condition: ParseRaceCondition(f["Condition"].Text),
				Surface:   ParseTrackSurface(f["Surface"].Text),
				DistanceM: f["DistanceM"].Int,
				HeadCount: f["HeadCount"].Int,
			}, nil
		},
	})

	register(recordSpec{
		kind: "SE",
		fields: []FieldSpec{
			{Name: "RaceKey", Offset: 11, Length: 16, Encoding: Code},
			{Name: "HorseId", Offset: 27, Length: 10, Encoding: Code},
			{Name: "HorseName", Offset: 37, Length: 36, Encoding: Text},
			{Name: "Sex", Offset: 73, Length: 1, Encoding: Code},
			{Name: "HairColour", Offset: 74, Length: 1, Encoding: Code},
			{Name: "WeightKg", Offset: 75, Length: 3, Encoding: Integer},
			{Name: "JockeyCode", Offset: 78, Length: 5, Encoding: Code},
			{Name: "Style", Offset: 83, Length: 1, Encoding: Code},
		},
		required: []string{"RaceKey", "HorseId", "HorseName"},
		build: func(f map[string]FieldValue) (Record, error) {
			raceKey := ids.NewRaceIdUnsafe(f["RaceKey"].Text)
			horseId := ids.NewRunnerIdUnsafe(f["HorseId"].Text)
			return RunnerEntry{
				RaceKey:    raceKey,
				HorseId:    horseId,
				HorseName:  f["HorseName"].Text,
				Sex:        ParseSex(f["Sex"].Text),
				HairColour: ParseHairColour(f["HairColour"].Text),
				WeightKg:   f["WeightKg"].Int,
				JockeyCode: f["JockeyCode"].Text,
				Style:      ParseRunningStyle(f["Style"].Text),
			}, nil
		},
	})

	register(recordSpec{
		kind: "TK",
		fields: []FieldSpec{
			{Name: "RaceKey", Offset: 11, Length: 16, Encoding: Code},
			{Name: "Reason", Offset: 27, Length: 40, Encoding: Text},
		},
		required: []string{"RaceKey"},
		build: func(f map[string]FieldValue) (Record, error) {
			return RaceChange{RaceKey: ids.NewRaceIdUnsafe(f["RaceKey"].Text), Reason: f["Reason"].Text}, nil
		},
	})

	register(recordSpec{
		kind: "HR",
		fields: []FieldSpec{
			{Name: "RaceKey", Offset: 11, Length: 16, Encoding: Code},
			{Name: "WinPayoff", Offset: 27, Length: 9, Encoding: Integer},
			{Name: "PlacePayoff", Offset: 36, Length: 9, Encoding: Integer},
		},
		required: []string{"RaceKey"},
		build: func(f map[string]FieldValue) (Record, error) {
			return Payoff{
				RaceKey:     ids.NewRaceIdUnsafe(f["RaceKey"].Text),
				WinPayoff:   f["WinPayoff"].Int,
				PlacePayoff: f["PlacePayoff"].Int,
			}, nil
		},
	})
}
