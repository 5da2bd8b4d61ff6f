package scraper

// Candidate is a raw extracted donor before amount normalization. Amount is
// free text; the campaign pages this family scrapes never expose amounts, so
// it is empty on everything coming out of the fetch and fallback paths.
type Candidate struct {
	Name   string
	Amount string
}

func candidatesFromNames(names []string) []Candidate {
	if len(names) == 0 {
		return nil
	}
	out := make([]Candidate, len(names))
	for i, name := range names {
		out[i] = Candidate{Name: name}
	}
	return out
}
