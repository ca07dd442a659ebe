package tokenizer

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// EncodeAll encodes every caption with up to workers goroutines. Captions are
// independent, so results land in their own slot and come back in input
// order whatever the worker count. workers <= 1 encodes sequentially.
func EncodeAll(ctx context.Context, tok Tokenizer, captions []string, workers int) ([][]Token, error) {
	out := make([][]Token, len(captions))
	if workers <= 1 {
		for i, c := range captions {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			out[i] = tok.Encode(c)
		}
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, c := range captions {
		if gctx.Err() != nil {
			break
		}
		i, c := i, c
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = tok.Encode(c)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
