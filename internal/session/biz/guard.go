package biz

// verifyGuard suppresses back-to-back ownership re-verifications of the same
// topic id. The reconciler is re-entered on every state change notification;
// without the guard a genuinely foreign topic would hit durable storage on
// every notification until the switch effect lands.
//
// No reset is needed: a changed assistant or a successful switch changes the
// topic id being asked about.
type verifyGuard struct {
	lastTopicID string
}

// shouldVerify reports whether an ownership check against durable storage
// should run for topicID. It always records the id it was asked about.
func (g *verifyGuard) shouldVerify(topicID string) bool {
	verify := topicID != g.lastTopicID
	g.lastTopicID = topicID
	return verify
}
