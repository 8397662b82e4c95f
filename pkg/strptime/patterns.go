package strptime

// Candidate patterns tried by Sniff, in priority order.
var (
	DateYMD = []string{
		"%Y-%m-%d",
		"%Y/%m/%d",
		"%Y.%m.%d",
	}

	DateDMY = []string{
		"%d-%m-%Y",
		"%d/%m/%Y",
		"%d.%m.%Y",
	}

	DatetimeYMD = []string{
		"%Y-%m-%dT%H:%M:%S%.f",
		"%Y-%m-%d %H:%M:%S%.f",
		"%Y/%m/%dT%H:%M:%S%.f",
		"%Y/%m/%d %H:%M:%S%.f",
		"%Y-%m-%dT%H:%M",
		"%Y-%m-%d %H:%M",
		"%Y/%m/%d %H:%M",
		"%Y%m%dT%H%M%S",
		"%Y%m%d%H%M%S",
		"%Y-%m-%dT%H:%M:%S%.f%:z",
		"%Y-%m-%d %H:%M:%S%.f%:z",
	}

	DatetimeDMY = []string{
		"%d-%m-%Y %H:%M:%S%.f",
		"%d/%m/%Y %H:%M:%S%.f",
		"%d.%m.%Y %H:%M:%S%.f",
		"%d-%m-%YT%H:%M:%S%.f",
		"%d/%m/%Y %H:%M",
		"%d-%m-%Y %H:%M",
		"%d.%m.%Y %H:%M",
	}

	TimePatterns = []string{
		"%T",
		"%T%.3f",
		"%T%.6f",
		"%T%.9f",
	}
)

type candidate struct {
	format *Format
	build  func(*Parsed) (DateTime, error)
}

var catalog = map[Kind][]candidate{
	KindDate: compileAll((*Parsed).Date, DateYMD, DateDMY),
	KindTime: compileAll((*Parsed).Time, TimePatterns),
	KindDatetime: append(
		compileAll((*Parsed).DateTime, DatetimeYMD, DatetimeDMY),
		compileAll((*Parsed).Date, DateYMD, DateDMY)...,
	),
}

func compileAll(build func(*Parsed) (DateTime, error), groups ...[]string) []candidate {
	var out []candidate
	for _, g := range groups {
		for _, pattern := range g {
			out = append(out, candidate{format: MustCompile(pattern), build: build})
		}
	}
	return out
}
