package config

import "encoding/json"

// rawConfig mirrors the top-level JSON document shape from SPEC_FULL §6.
// Kept separate from the exported Config so decode concerns (optional
// pointers, raw sub-documents) don't leak into the validated domain types.
type rawConfig struct {
	MQTT struct {
		Host     string `json:"host"`
		Port     int    `json:"port"`
		Username string `json:"username"`
		Password string `json:"password"`
	} `json:"mqtt"`
	MessageService struct {
		Mail rawMail `json:"mail"`
		SMS  rawSMS  `json:"sms"`
	} `json:"messageService"`
	WatchList        json.RawMessage `json:"watchList"`
	NotificationList json.RawMessage `json:"notificationList"`
}

type rawMail struct {
	Host       string `json:"host"`
	Port       int    `json:"port"`
	From       string `json:"from"`
	IgnoreTLS  *bool  `json:"ignoreTLS"`
	RequireTLS *bool  `json:"requireTLS"`
	Name       string `json:"name"`
	TLS        *struct {
		ServerName         string `json:"servername"`
		RejectUnauthorized *bool  `json:"rejectUnauthorized"`
	} `json:"tls"`
	Auth *struct {
		User string `json:"user"`
		Pass string `json:"pass"`
	} `json:"auth"`
}

type rawSMS struct {
	Enabled *bool  `json:"enabled"`
	SID     string `json:"sid"`
	Token   string `json:"token"`
	Service string `json:"service"`
}

type rawWatch struct {
	ID      string     `json:"id"`
	Topic   string     `json:"topic"`
	Enabled *bool      `json:"enabled"`
	Dynamic bool       `json:"dynamic"`
	Events  []rawEvent `json:"events"`
}

type rawEvent struct {
	Subject      string          `json:"subject"`
	Default      any             `json:"default"`
	ActiveHours  []string        `json:"activeHours"`
	Dependencies []rawDependency `json:"dependencies"`
	Dynamic      bool            `json:"dynamic"`
	StateKey     string          `json:"stateKey"`
	Conditions   []rawCondition  `json:"conditions"`
}

type rawDependency struct {
	Path  string `json:"path"`
	State any    `json:"state"`
}

type rawCondition struct {
	Value            json.RawMessage `json:"value"`
	Condition        string          `json:"condition"`
	Log              string          `json:"log"`
	Message          string          `json:"message"`
	Severity         string          `json:"severity"`
	Edge             string          `json:"edge"`
	CooldownSec      *int            `json:"cooldownSec"`
	Key              string          `json:"key"`
	WarningThreshold *int            `json:"warningThreshold"`
	WarningMessage   string          `json:"warningMessage"`
	WarningSeverity  string          `json:"warningSeverity"`
	Reset            *int            `json:"reset"`
}

type rawNotificationList struct {
	ID         string         `json:"id"`
	Recipients []rawRecipient `json:"recipients"`
}

type rawRecipient struct {
	Type        string `json:"type"`
	Recipient   string `json:"recipient"`
	Enabled     *bool  `json:"enabled"`
	MinSeverity string `json:"minSeverity"`
}
