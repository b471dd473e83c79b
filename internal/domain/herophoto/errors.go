package herophoto

import "errors"

var ErrHeroPhotoNotFound = errors.New("hero photo not found")
