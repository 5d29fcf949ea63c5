package channel

func (r *Registry) runInbound() {
	defer r.wg.Done()

	for {
		msg, ok := r.inbound.Pop()
		if !ok {
			return
		}
		h := r.currentHandler()
		if h == nil {
			r.logger.Info("Message received without handler",
				"device_id", msg.DeviceID,
				"kind", msg.Kind,
				"bytes", len(msg.Payload),
			)
			continue
		}
		h.HandleMessage(r.context(), msg)
	}
}

func (r *Registry) runOutbound() {
	defer r.wg.Done()

	for {
		msg, ok := r.outbound.Pop()
		if !ok {
			return
		}
		r.deliver(msg)
	}
}

// deliver отправляет сообщение в канал устройства.
// Сообщения без маршрута отбрасываются и передаются в HandleUndelivered.
func (r *Registry) deliver(msg Message) {
	ch, ok := r.Channel(msg.DeviceID)
	if !ok {
		r.logger.Warn("No route to device, message dropped",
			"device_id", msg.DeviceID,
			"kind", msg.Kind,
		)
		r.undelivered(msg)
		return
	}

	if err := ch.Send(msg.Kind, msg.Payload); err != nil {
		r.logger.Warn("Failed to send message, dropped",
			"device_id", msg.DeviceID,
			"kind", msg.Kind,
			"error", err,
		)
		r.undelivered(msg)
	}
}

func (r *Registry) undelivered(msg Message) {
	if h := r.currentHandler(); h != nil {
		h.HandleUndelivered(r.context(), msg)
	}
}
