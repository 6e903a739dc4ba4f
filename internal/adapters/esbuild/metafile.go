package esbuild

import (
	"encoding/json"
	"strings"
)

// metafile is the subset of esbuild's metafile JSON the bundler reads.
type metafile struct {
	Outputs map[string]metafileOutput `json:"outputs"`
}

type metafileOutput struct {
	Bytes      int                     `json:"bytes"`
	Inputs     map[string]inputContrib `json:"inputs"`
	EntryPoint string                  `json:"entryPoint,omitempty"`
	CSSBundle  string                  `json:"cssBundle,omitempty"`
}

type inputContrib struct {
	BytesInOutput int `json:"bytesInOutput"`
}

func parseMetafile(data string) (*metafile, error) {
	var m metafile
	if strings.TrimSpace(data) == "" {
		return &metafile{Outputs: map[string]metafileOutput{}}, nil
	}
	if err := json.Unmarshal([]byte(data), &m); err != nil {
		return nil, err
	}
	if m.Outputs == nil {
		m.Outputs = map[string]metafileOutput{}
	}
	return &m, nil
}
