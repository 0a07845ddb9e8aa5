package record

import "github.com/cariandrum22/Xanthos-sub000/pkg/ids"

// HorseMaster is the "UM" record: a horse's master (pedigree/profile)
// record, refreshed independently of any particular race.
type HorseMaster struct {
	HorseId   ids.RunnerId
	HorseName string
	Sex       Sex
	Breed     Breed
	Import    ImportCategory
	Birthdate string
}

// RecordKind implements Record.
func (HorseMaster) RecordKind() string { return "UM" }

// JockeyMaster is the "KS" record: a jockey's master record.
type JockeyMaster struct {
	JockeyCode string
	Name       string
}

// RecordKind implements Record.
func (JockeyMaster) RecordKind() string { return "KS" }

// TrainerMaster is the "CH" record: a trainer's master record.
type TrainerMaster struct {
	TrainerCode string
	Name        string
	Centre      TrainingCentre
}

// RecordKind implements Record.
func (TrainerMaster) RecordKind() string { return "CH" }

func init() {
	register(recordSpec{
		kind: "UM",
		fields: []FieldSpec{
			{Name: "HorseId", Offset: 2, Length: 10, Encoding: Code},
			{Name: "HorseName", Offset: 12, Length: 36, Encoding: Text},
			{Name: "Sex", Offset: 48, Length: 1, Encoding: Code},
			{Name: "Breed", Offset: 49, Length: 1, Encoding: Code},
			{Name: "Import", Offset: 50, Length: 1, Encoding: Code},
			{Name: "Birthdate", Offset: 51, Length: 8, Encoding: DateField, Layout: "20060102"},
		},
		required: []string{"HorseId", "HorseName"},
		build: func(f map[string]FieldValue) (Record, error) {
			birth := ""
			if !f["Birthdate"].IsMissing {
				birth = f["Birthdate"].Time.Format("2006-01-02")
			}
			return HorseMaster{
				HorseId:   ids.NewRunnerIdUnsafe(f["HorseId"].Text),
				HorseName: f["HorseName"].Text,
				Sex:       ParseSex(f["Sex"].Text),
				Breed:     ParseBreed(f["Breed"].Text),
				Import:    ParseImportCategory(f["Import"].Text),
				Birthdate: birth,
			}, nil
		},
	})

	register(recordSpec{
		kind: "KS",
		fields: []FieldSpec{
			{Name: "JockeyCode", Offset: 2, Length: 5, Encoding: Code},
			{Name: "Name", Offset: 7, Length: 34, Encoding: Text},
		},
		required: []string{"JockeyCode"},
		build: func(f map[string]FieldValue) (Record, error) {
			return JockeyMaster{JockeyCode: f["JockeyCode"].Text, Name: f["Name"].Text}, nil
		},
	})

	register(recordSpec{
		kind: "CH",
		fields: []FieldSpec{
			{Name: "TrainerCode", Offset: 2, Length: 5, Encoding: Code},
			{Name: "Name", Offset: 7, Length: 34, Encoding: Text},
			{Name: "Centre", Offset: 41, Length: 1, Encoding: Code},
		},
		required: []string{"TrainerCode"},
		build: func(f map[string]FieldValue) (Record, error) {
			return TrainerMaster{
				TrainerCode: f["TrainerCode"].Text,
				Name:        f["Name"].Text,
				Centre:      ParseTrainingCentre(f["Centre"].Text),
			}, nil
		},
	})
}
