package cmd

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/project"
)

// Repeatable load flags. Each occurrence may also hold several loads
// separated by ';'.

type pointsFlag []beam.PointLoad

var _ pflag.Value = (*pointsFlag)(nil)

func (f *pointsFlag) String() string {
	parts := make([]string, len(*f))
	for i, p := range *f {
		parts[i] = project.FormatPoint(p)
	}
	return "[" + strings.Join(parts, "; ") + "]"
}

func (f *pointsFlag) Set(s string) error {
	for _, item := range project.SplitList(s) {
		p, err := project.ParsePoint(item)
		if err != nil {
			return err
		}
		*f = append(*f, p)
	}
	return nil
}

func (f *pointsFlag) Type() string { return "loc:P[:case]" }

type udlsFlag []beam.DistributedLoad

var _ pflag.Value = (*udlsFlag)(nil)

func (f *udlsFlag) String() string {
	parts := make([]string, len(*f))
	for i, u := range *f {
		parts[i] = project.FormatUDL(u)
	}
	return "[" + strings.Join(parts, "; ") + "]"
}

func (f *udlsFlag) Set(s string) error {
	for _, item := range project.SplitList(s) {
		u, err := project.ParseUDL(item)
		if err != nil {
			return err
		}
		*f = append(*f, u)
	}
	return nil
}

func (f *udlsFlag) Type() string { return "start:end:w[:case]" }

type momentsFlag []beam.AppliedMoment

var _ pflag.Value = (*momentsFlag)(nil)

func (f *momentsFlag) String() string {
	parts := make([]string, len(*f))
	for i, m := range *f {
		parts[i] = project.FormatMoment(m)
	}
	return "[" + strings.Join(parts, "; ") + "]"
}

func (f *momentsFlag) Set(s string) error {
	for _, item := range project.SplitList(s) {
		m, err := project.ParseMoment(item)
		if err != nil {
			return err
		}
		*f = append(*f, m)
	}
	return nil
}

func (f *momentsFlag) Type() string { return "loc:M[:case]" }
