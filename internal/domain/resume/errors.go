package resume

import "errors"

var ErrResumeNotFound = errors.New("resume not found")
