package source

import (
	"context"
	"io"

	"github.com/dd0wney/cluso-graphsim/pkg/graph"
	"github.com/dd0wney/cluso-graphsim/pkg/logging"
	"github.com/dd0wney/cluso-graphsim/pkg/tlg"
)

// ReadGraph opens the location and decodes it in the given format.
func (o *Opener) ReadGraph(ctx context.Context, location string, format tlg.Format, d graph.Directedness, opts tlg.ReadOptions) (*graph.Graph, error) {
	rc, err := o.Open(ctx, location)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	timer := logging.StartTimer(o.logger, "graph loaded", logging.Path(location), logging.String("format", format.String()))
	g, err := tlg.Read(rc, format, d, opts)
	if err != nil {
		timer.EndError(err)
		return nil, err
	}
	timer.End(logging.Int("nodes", g.NodeCount()), logging.Int("edges", g.EdgeCount()))
	return g, nil
}

// WriteGraph creates the location and hands it to write. The target is
// closed afterwards; a failed close is reported.
func (o *Opener) WriteGraph(ctx context.Context, location string, write func(io.Writer) error) (err error) {
	wc, err := o.Create(ctx, location)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := wc.Close(); err == nil {
			err = cerr
		}
	}()
	return write(wc)
}
