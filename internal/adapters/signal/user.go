package signal

func (ctl *SignalWSController) handleWhoAmI(cl *wsClient) error {
	return cl.sess.WhoAmI()
}
