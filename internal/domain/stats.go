package domain

type HubStats struct {
	Channels      int   `json:"channels"`
	Broadcasts    int64 `json:"broadcasts"`
	Delivered     int64 `json:"delivered"`
	Failed        int64 `json:"failed"`
	DroppedEvents int64 `json:"droppedEvents"`
}

type SystemStats struct {
	Hub             HubStats `json:"hub"`
	Sessions        int      `json:"sessions"`
	PendingWebhooks int64    `json:"pendingWebhooks"`
}
