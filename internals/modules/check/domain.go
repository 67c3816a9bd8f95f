package check

import (
	"fmt"
	"strings"
	"time"
)

type Protocol string

const (
	HTTP  Protocol = "http"
	HTTPS Protocol = "https"
)

type Method string

const (
	Get    Method = "get"
	Post   Method = "post"
	Put    Method = "put"
	Delete Method = "delete"
)

type State string

const (
	StateUp   State = "UP"
	StateDown State = "DOWN"
)

const (
	IDLength       = 20
	MinPhoneLength = 12
	MinTimeoutSec  = 1
	MaxTimeoutSec  = 5
)

// Check is the persisted record of one monitored endpoint. State and
// LastChecked are only ever written together, by the result processor.
type Check struct {
	ID             string   `json:"id" validate:"len=20"`
	OwnerPhone     string   `json:"ownerPhone" validate:"min=12"`
	Protocol       Protocol `json:"protocol" validate:"oneof=http https"`
	URL            string   `json:"url" validate:"required"`
	Method         Method   `json:"method" validate:"oneof=get post put delete"`
	SuccessCodes   []int    `json:"successCodes" validate:"min=1"`
	TimeoutSeconds int      `json:"timeoutSeconds" validate:"min=1,max=5"`
	State          State    `json:"state,omitempty"`
	LastChecked    int64    `json:"lastChecked,omitempty"` // unix millis, 0 = never probed
}

// HasBeenChecked reports whether a probe outcome was ever recorded.
func (c Check) HasBeenChecked() bool {
	return c.LastChecked > 0
}

// ComparableState is the state used to detect transitions. A missing or
// unknown state compares as DOWN.
func (c Check) ComparableState() State {
	if c.State == StateUp {
		return StateUp
	}
	return StateDown
}

func (c Check) LastCheckedAt() time.Time {
	if !c.HasBeenChecked() {
		return time.Time{}
	}
	return time.UnixMilli(c.LastChecked)
}

// Target is protocol://url, the address that gets probed.
func (c Check) Target() string {
	return fmt.Sprintf("%s://%s", c.Protocol, strings.TrimSpace(c.URL))
}

func (c Check) HasSuccessCode(code int) bool {
	for _, sc := range c.SuccessCodes {
		if sc == code {
			return true
		}
	}
	return false
}

type CreateCheckCmd struct {
	Protocol       Protocol
	URL            string
	Method         Method
	SuccessCodes   []int
	TimeoutSeconds int
}

// UpdateCheckCmd changes only the fields that are set.
type UpdateCheckCmd struct {
	Protocol       *Protocol
	URL            *string
	Method         *Method
	SuccessCodes   []int
	TimeoutSeconds *int
}

func (c UpdateCheckCmd) Empty() bool {
	return c.Protocol == nil && c.URL == nil && c.Method == nil && c.SuccessCodes == nil && c.TimeoutSeconds == nil
}
