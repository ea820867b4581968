package dice

import "go.uber.org/zap"

// LoggedSource wraps a SeededSource and logs every seed and draw at debug level.
type LoggedSource struct {
	src    SeededSource
	logger *zap.Logger
}

// NewLoggedSource creates a LoggedSource that delegates to src.
//
// Precondition: src and logger must be non-nil.
func NewLoggedSource(src SeededSource, logger *zap.Logger) *LoggedSource {
	return &LoggedSource{src: src, logger: logger}
}

// Seed reseeds the wrapped source.
func (s *LoggedSource) Seed(seed int64) {
	s.src.Seed(seed)
	s.logger.Debug("random source seeded", zap.Int64("seed", seed))
}

// NextInt draws from the wrapped source and logs the bound and result.
//
// Postcondition: Returns exactly what the wrapped source returns.
func (s *LoggedSource) NextInt(bound int) (int, error) {
	v, err := s.src.NextInt(bound)
	if err != nil {
		s.logger.Warn("random draw rejected", zap.Int("bound", bound), zap.Error(err))
		return 0, err
	}
	s.logger.Debug("random draw", zap.Int("bound", bound), zap.Int("value", v))
	return v, nil
}

// Intn draws from the wrapped source, panicking on an invalid bound.
func (s *LoggedSource) Intn(n int) int {
	v, err := s.NextInt(n)
	if err != nil {
		panic(err.Error())
	}
	return v
}
