package mqtt

// SubscribeInvalidation wires the hub change-event topics to the cache.
// Registry-wide events call invalidate; per-entry events call
// invalidateEntry with the entry ID taken from the topic. The payloads
// carry change details but the service refetches on the next render
// anyway, so only the topic matters.
func SubscribeInvalidation(c *Client, qos byte, invalidate func(), invalidateEntry func(entryID string)) error {
	topics := Topics{}

	if err := c.Subscribe(topics.HubRegistry(), qos, func(_ string, _ []byte) error {
		invalidate()
		return nil
	}); err != nil {
		return err
	}

	return c.Subscribe(topics.AllHubEntries(), qos, func(topic string, _ []byte) error {
		if entryID := EntryIDFromTopic(topic); entryID != "" {
			invalidateEntry(entryID)
			return nil
		}
		invalidate()
		return nil
	})
}
