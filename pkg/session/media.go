package session

import "context"

// WorkoutListing is one payload FetchWorkoutVideos read.
type WorkoutListing struct {
	HorseId string
	ClipURL string
}

// FetchWorkoutVideos runs FetchAll over the ordinary Open primitive, with
// movieType as the data spec and searchKey as the from-key, and turns
// each payload into a listing; the Contract has no separate movie-list
// open, so none is used (spec.md §4.6 item 8). movieType selects which
// training-centre family to query (H1/H5/H6 in the record-kind sense);
// searchKey narrows the listing (e.g. a horse ID or date).
func (o *Orchestrator) FetchWorkoutVideos(ctx context.Context, sid, movieType, searchKey string) ([]WorkoutListing, error) {
	payloads, err := o.FetchAll(ctx, sid, Request{Spec: movieType, FromKey: searchKey})
	if err != nil {
		return nil, err
	}

	listings := make([]WorkoutListing, 0, len(payloads))
	for _, p := range payloads {
		listings = append(listings, WorkoutListing{HorseId: p.Filename, ClipURL: string(p.Buffer)})
	}
	return listings, nil
}

// CheckWorkoutVideo reports whether a training-video clip exists for
// horseId.
func (o *Orchestrator) CheckWorkoutVideo(ctx context.Context, horseId string) (bool, error) {
	v, err := o.withOperationLock(func() (any, error) {
		return o.submit(ctx, func(ctx context.Context) (any, error) {
			return o.backend.CheckWorkoutVideo(ctx, horseId)
		})
	})
	if err != nil {
		return false, wrapNative(err)
	}
	return v.(bool), nil
}

// OpenWorkoutVideo resolves the playable path/URL for horseId's clip.
func (o *Orchestrator) OpenWorkoutVideo(ctx context.Context, horseId string) (string, error) {
	v, err := o.withOperationLock(func() (any, error) {
		return o.submit(ctx, func(ctx context.Context) (any, error) {
			return o.backend.OpenWorkoutVideo(ctx, horseId)
		})
	})
	if err != nil {
		return "", wrapNative(err)
	}
	return v.(string), nil
}
