package pipe

type simpleStage[R any] struct {
	fn func(r *R) ([]*R, error)
}

func (s *simpleStage[R]) process(r *R) ([]*R, error) {
	return s.fn(r)
}
