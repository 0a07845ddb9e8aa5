package record

// Code tables (spec.md §4.3): named enumerations keyed by a decimal string
// code. An unrecognised code decodes to the type's zero value rather than
// an error — the distilled spec's "unknown code -> None" rule — and each
// type exposes an Unknown/Other arm only where the upstream schema
// actually uses one.

// Sex is the runner's sex code.
type Sex int

const (
	SexUnknown Sex = iota
	SexColt
	SexFilly
	SexGelding
)

func (s Sex) String() string {
	switch s {
	case SexColt:
		return "colt"
	case SexFilly:
		return "filly"
	case SexGelding:
		return "gelding"
	default:
		return "unknown"
	}
}

// ParseSex maps a raw decimal code to Sex.
func ParseSex(code string) Sex {
	switch code {
	case "1":
		return SexColt
	case "2":
		return SexFilly
	case "3":
		return SexGelding
	default:
		return SexUnknown
	}
}

// HairColour is the runner's coat colour code.
type HairColour int

const (
	HairColourUnknown HairColour = iota
	HairColourBay
	HairColourDarkBay
	HairColourBlack
	HairColourChestnut
	HairColourRoan
	HairColourGrey
	HairColourWhite
)

var hairColourNames = map[string]HairColour{
	"1": HairColourBay,
	"2": HairColourDarkBay,
	"3": HairColourBlack,
	"4": HairColourChestnut,
	"6": HairColourRoan,
	"7": HairColourGrey,
	"9": HairColourWhite,
}

func (h HairColour) String() string {
	switch h {
	case HairColourBay:
		return "bay"
	case HairColourDarkBay:
		return "dark_bay"
	case HairColourBlack:
		return "black"
	case HairColourChestnut:
		return "chestnut"
	case HairColourRoan:
		return "roan"
	case HairColourGrey:
		return "grey"
	case HairColourWhite:
		return "white"
	default:
		return "unknown"
	}
}

// ParseHairColour maps a raw decimal code to HairColour.
func ParseHairColour(code string) HairColour { return hairColourNames[code] }

// TrackCondition is the going/condition of the track.
type TrackCondition int

const (
	TrackConditionUnknown TrackCondition = iota
	TrackConditionFirm
	TrackConditionGood
	TrackConditionYielding
	TrackConditionSoft
)

var trackConditionNames = map[string]TrackCondition{
	"1": TrackConditionFirm,
	"2": TrackConditionGood,
	"3": TrackConditionYielding,
	"4": TrackConditionSoft,
}

func (c TrackCondition) String() string {
	switch c {
	case TrackConditionFirm:
		return "firm"
	case TrackConditionGood:
		return "good"
	case TrackConditionYielding:
		return "yielding"
	case TrackConditionSoft:
		return "soft"
	default:
		return "unknown"
	}
}

// ParseTrackCondition maps a raw decimal code to TrackCondition.
func ParseTrackCondition(code string) TrackCondition { return trackConditionNames[code] }

// TrackSurface distinguishes turf from dirt (and the rarer surfaces JRA
// courses use for jump racing).
type TrackSurface int

const (
	TrackSurfaceUnknown TrackSurface = iota
	TrackSurfaceTurf
	TrackSurfaceDirt
	TrackSurfaceJumpTurf
	TrackSurfaceJumpDirt
)

var trackSurfaceNames = map[string]TrackSurface{
	"1": TrackSurfaceTurf,
	"2": TrackSurfaceDirt,
	"3": TrackSurfaceJumpTurf,
	"4": TrackSurfaceJumpDirt,
}

func (s TrackSurface) String() string {
	switch s {
	case TrackSurfaceTurf:
		return "turf"
	case TrackSurfaceDirt:
		return "dirt"
	case TrackSurfaceJumpTurf:
		return "jump_turf"
	case TrackSurfaceJumpDirt:
		return "jump_dirt"
	default:
		return "unknown"
	}
}

// ParseTrackSurface maps a raw decimal code to TrackSurface.
func ParseTrackSurface(code string) TrackSurface { return trackSurfaceNames[code] }

// Venue is one of JRA's ten racecourses.
type Venue int

const (
	VenueUnknown Venue = iota
	VenueSapporo
	VenueHakodate
	VenueFukushima
	VenueNiigata
	VenueTokyo
	VenueNakayama
	VenueChukyo
	VenueKyoto
	VenueHanshin
	VenueKokura
)

var venueNames = map[string]Venue{
	"01": VenueSapporo,
	"02": VenueHakodate,
	"03": VenueFukushima,
	"04": VenueNiigata,
	"05": VenueTokyo,
	"06": VenueNakayama,
	"07": VenueChukyo,
	"08": VenueKyoto,
	"09": VenueHanshin,
	"10": VenueKokura,
}

func (v Venue) String() string {
	for code, val := range venueNames {
		if val == v {
			return code
		}
	}
	return "unknown"
}

// ParseVenue maps a raw two-digit code to Venue.
func ParseVenue(code string) Venue { return venueNames[code] }

// Grade is the race's graded-stakes classification.
type Grade int

const (
	GradeNone Grade = iota
	GradeG1
	GradeG2
	GradeG3
	GradeListed
)

var gradeNames = map[string]Grade{
	"A": GradeG1,
	"B": GradeG2,
	"C": GradeG3,
	"L": GradeListed,
}

func (g Grade) String() string {
	switch g {
	case GradeG1:
		return "G1"
	case GradeG2:
		return "G2"
	case GradeG3:
		return "G3"
	case GradeListed:
		return "listed"
	default:
		return "none"
	}
}

// ParseGrade maps a raw single-character code to Grade.
func ParseGrade(code string) Grade { return gradeNames[code] }

// RaceCondition is the eligibility class of the race (e.g. maiden,
// allowance tier, open).
type RaceCondition int

const (
	RaceConditionUnknown RaceCondition = iota
	RaceConditionMaiden
	RaceConditionAllowanceOne
	RaceConditionAllowanceTwo
	RaceConditionAllowanceThree
	RaceConditionOpen
)

var raceConditionNames = map[string]RaceCondition{
	"005": RaceConditionMaiden,
	"010": RaceConditionAllowanceOne,
	"016": RaceConditionAllowanceTwo,
	"999": RaceConditionAllowanceThree,
	"701": RaceConditionOpen,
}

func (c RaceCondition) String() string {
	switch c {
	case RaceConditionMaiden:
		return "maiden"
	case RaceConditionAllowanceOne:
		return "allowance_1win"
	case RaceConditionAllowanceTwo:
		return "allowance_2win"
	case RaceConditionAllowanceThree:
		return "allowance_3win"
	case RaceConditionOpen:
		return "open"
	default:
		return "unknown"
	}
}

// ParseRaceCondition maps a raw three-digit code to RaceCondition.
func ParseRaceCondition(code string) RaceCondition { return raceConditionNames[code] }

// RunningStyle is the runner's typical tactical position, as published by
// JRA-VAN's pace-analysis data.
type RunningStyle int

const (
	RunningStyleUnknown RunningStyle = iota
	RunningStyleFrontRunner
	RunningStyleStalker
	RunningStyleMidfield
	RunningStyleCloser
)

var runningStyleNames = map[string]RunningStyle{
	"1": RunningStyleFrontRunner,
	"2": RunningStyleStalker,
	"3": RunningStyleMidfield,
	"4": RunningStyleCloser,
}

func (s RunningStyle) String() string {
	switch s {
	case RunningStyleFrontRunner:
		return "front_runner"
	case RunningStyleStalker:
		return "stalker"
	case RunningStyleMidfield:
		return "midfield"
	case RunningStyleCloser:
		return "closer"
	default:
		return "unknown"
	}
}

// ParseRunningStyle maps a raw decimal code to RunningStyle.
func ParseRunningStyle(code string) RunningStyle { return runningStyleNames[code] }

// DayOfWeek is JV-Link's own single-digit day-of-week code (distinct from
// time.Weekday, since the upstream encoding starts the week on Monday).
type DayOfWeek int

const (
	DayOfWeekUnknown DayOfWeek = iota
	DayOfWeekMonday
	DayOfWeekTuesday
	DayOfWeekWednesday
	DayOfWeekThursday
	DayOfWeekFriday
	DayOfWeekSaturday
	DayOfWeekSunday
)

func (d DayOfWeek) String() string {
	names := [...]string{"unknown", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
	if int(d) < len(names) {
		return names[d]
	}
	return "unknown"
}

// ParseDayOfWeek maps a raw decimal code (1=Monday..7=Sunday) to DayOfWeek.
func ParseDayOfWeek(code string) DayOfWeek {
	switch code {
	case "1":
		return DayOfWeekMonday
	case "2":
		return DayOfWeekTuesday
	case "3":
		return DayOfWeekWednesday
	case "4":
		return DayOfWeekThursday
	case "5":
		return DayOfWeekFriday
	case "6":
		return DayOfWeekSaturday
	case "7":
		return DayOfWeekSunday
	default:
		return DayOfWeekUnknown
	}
}

// Breed is the runner's breed/type classification.
type Breed int

const (
	BreedUnknown Breed = iota
	BreedThoroughbred
	BreedArabian
	BreedAngloArab
)

func (b Breed) String() string {
	switch b {
	case BreedThoroughbred:
		return "thoroughbred"
	case BreedArabian:
		return "arabian"
	case BreedAngloArab:
		return "anglo_arab"
	default:
		return "unknown"
	}
}

// ParseBreed maps a raw decimal code to Breed.
func ParseBreed(code string) Breed {
	switch code {
	case "1":
		return BreedThoroughbred
	case "2":
		return BreedArabian
	case "3":
		return BreedAngloArab
	default:
		return BreedUnknown
	}
}

// ImportCategory classifies a runner's import status.
type ImportCategory int

const (
	ImportCategoryUnknown ImportCategory = iota
	ImportCategoryDomestic
	ImportCategoryImported
	ImportCategoryImportedInTraining
)

func (c ImportCategory) String() string {
	switch c {
	case ImportCategoryDomestic:
		return "domestic"
	case ImportCategoryImported:
		return "imported"
	case ImportCategoryImportedInTraining:
		return "imported_in_training"
	default:
		return "unknown"
	}
}

// ParseImportCategory maps a raw decimal code to ImportCategory.
func ParseImportCategory(code string) ImportCategory {
	switch code {
	case "0":
		return ImportCategoryDomestic
	case "1":
		return ImportCategoryImported
	case "2":
		return ImportCategoryImportedInTraining
	default:
		return ImportCategoryUnknown
	}
}

// TrainingCentre is the trainer's home training centre.
type TrainingCentre int

const (
	TrainingCentreUnknown TrainingCentre = iota
	TrainingCentreMiho
	TrainingCentreRitto
)

func (c TrainingCentre) String() string {
	switch c {
	case TrainingCentreMiho:
		return "miho"
	case TrainingCentreRitto:
		return "ritto"
	default:
		return "unknown"
	}
}

// ParseTrainingCentre maps a raw decimal code to TrainingCentre.
func ParseTrainingCentre(code string) TrainingCentre {
	switch code {
	case "1":
		return TrainingCentreMiho
	case "2":
		return TrainingCentreRitto
	default:
		return TrainingCentreUnknown
	}
}
