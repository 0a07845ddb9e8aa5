package record

import "github.com/cariandrum22/Xanthos-sub000/pkg/ids"

// OddsSnapshot is the shared shape of the six odds-snapshot kinds O1
// (win/place), O2 (wide), O3 (bracket quinella), O4 (quinella/exacta), O5
// (trio), O6 (trifecta). The snapshot carries its own Kind so callers can
// tell the six apart after the fact.
type OddsSnapshot struct {
	Kind       string
	RaceKey    ids.RaceId
	AnnouncedAt string
	Raw        []byte
}

// RecordKind implements Record.
func (o OddsSnapshot) RecordKind() string { return o.Kind }

func init() {
	for _, kind := range []string{"O1", "O2", "O3", "O4", "O5", "O6"} {
		k := kind
		register(recordSpec{
			kind: k,
			fields: []FieldSpec{
				{Name: "RaceKey", Offset: 11, Length: 16, Encoding: Code},
				{Name: "AnnouncedAt", Offset: 27, Length: 8, Encoding: Code},
				{Name: "Body", Offset: 35, Length: 0, Encoding: Bytes},
			},
			required: []string{"RaceKey"},
			build: func(f map[string]FieldValue) (Record, error) {
				return OddsSnapshot{
					Kind:        k,
					RaceKey:     ids.NewRaceIdUnsafe(f["RaceKey"].Text),
					AnnouncedAt: f["AnnouncedAt"].Text,
					Raw:         f["Body"].Raw,
				}, nil
			},
		})
	}
}
