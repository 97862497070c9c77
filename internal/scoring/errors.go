package scoring

import "errors"

// Sentinel errors for missing inputs. The scoring math itself never fails.
var (
	ErrResumeNotFound = errors.New("resume not found")
	ErrJobNotFound    = errors.New("job not found")
)
