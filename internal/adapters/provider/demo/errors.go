package demo

import "errors"

// Sentinel errors for demo id resolution.
var (
	ErrNotDemoID      = errors.New("not a demo event id")
	ErrUnknownFixture = errors.New("unknown demo fixture")
)
