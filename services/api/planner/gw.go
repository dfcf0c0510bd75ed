package planner

// DefaultGWTimeResolutionMinutes is the sampling step requested from the GW endpoint.
const DefaultGWTimeResolutionMinutes = 30

// DetectorClassifier tells gravitational-wave detectors apart from other facilities.
type DetectorClassifier interface {
	IsGWDetector(id string) bool
}

// BuildGWPayload builds the GW visibility body. Coordinates always come from the
// sidereal target, whatever the active target type is. A non-empty selection is
// narrowed to detectors; when none of it are detectors it is sent unchanged.
func BuildGWPayload(s FilterState, classifier DetectorClassifier, resolutionMinutes int) (Payload, *QueryError) {
	ra := floatField("ra", s.Sidereal.RA)
	dec := floatField("dec", s.Sidereal.Dec)
	if !ra.present || !dec.present {
		return nil, validationError(ErrGWMissingCoordinate)
	}
	if resolutionMinutes <= 0 {
		resolutionMinutes = DefaultGWTimeResolutionMinutes
	}

	p := Payload{}
	p.merge([]field{
		ra,
		dec,
		timeField("start", s.Base.Start),
		timeField("end", s.Base.End),
	})
	p["time_resolution_minutes"] = resolutionMinutes

	if len(s.Base.Telescopes) > 0 {
		p["telescopes"] = gwTelescopes(s.Base.Telescopes, classifier)
	}
	return p, nil
}

func gwTelescopes(selected []string, classifier DetectorClassifier) []string {
	detectors := make([]string, 0, len(selected))
	for _, id := range selected {
		if classifier.IsGWDetector(id) {
			detectors = append(detectors, id)
		}
	}
	if len(detectors) == 0 {
		return append([]string(nil), selected...)
	}
	return detectors
}
