package main

import "github.com/cariandrum22/Xanthos-sub000/pkg/client"

// seedDemoScript pre-loads the in-memory Stub with a plausible read
// sequence so the probe has something to show on platforms where the
// native backend can't be built: two records in one file, a file
// boundary, one more record in a second file, then end of stream.
func seedDemoScript(stub *client.Stub) {
	stub.Script(client.ReadOutcome{
		Kind:     client.ReadOutcomeRecord,
		Buffer:   []byte("RA202607300120260812TOKYO   "),
		Filename: "RACE20260730.jvd",
	}, nil)
	stub.Script(client.ReadOutcome{
		Kind:     client.ReadOutcomeRecord,
		Buffer:   []byte("SE202607300120260812TOKYO 01"),
		Filename: "RACE20260730.jvd",
	}, nil)
	stub.Script(client.ReadOutcome{Kind: client.ReadOutcomeFileBoundary}, nil)
	stub.Script(client.ReadOutcome{
		Kind:     client.ReadOutcomeRecord,
		Buffer:   []byte("UM00000001  DEMO HORSE      "),
		Filename: "RACE20260731.jvd",
	}, nil)
	stub.Script(client.ReadOutcome{Kind: client.ReadOutcomeEndOfStream}, nil)
}
