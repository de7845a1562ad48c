package pipe

import "context"

func done(ctx context.Context, stopped <-chan struct{}) bool {
	select {
	case <-ctx.Done():
		return true
	case <-stopped:
		return true
	default:
		return false
	}
}
