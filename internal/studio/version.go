package studio

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// APIVersion identifies the studio automation protocol revision. The studio
// reports it as a JSON number; it is parsed textually so 1.0 never falls
// into float-equality territory.
type APIVersion struct {
	Major int
	Minor int
}

// SupportedAPIVersion is the single protocol revision this controller speaks.
var SupportedAPIVersion = APIVersion{Major: 1, Minor: 0}

func (v APIVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// ParseAPIVersion decodes the raw Version reply.
func ParseAPIVersion(raw json.RawMessage) (APIVersion, error) {
	var number json.Number
	if err := json.Unmarshal(raw, &number); err != nil {
		return APIVersion{}, fmt.Errorf("parse api version %s: %w", raw, err)
	}

	text := number.String()
	parts := strings.SplitN(text, ".", 2)
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return APIVersion{}, fmt.Errorf("parse api version %q: %w", text, err)
	}
	minor := 0
	if len(parts) == 2 {
		minor, err = strconv.Atoi(parts[1])
		if err != nil {
			return APIVersion{}, fmt.Errorf("parse api version %q: %w", text, err)
		}
	}
	return APIVersion{Major: major, Minor: minor}, nil
}
