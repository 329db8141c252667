package simple

// IpChecker tracks which IPs each identity is connecting from, so the
// lobby can refuse a second seat at the same table from the same
// address.  WebClients Add/Sub themselves as their connections come and
// go; a game Use()s a seat and DoneUse()s it when the seat frees up.
type IpChecker interface {
	Add(i Identity, addr string)
	Sub(i Identity, addr string)
	Use(usecase string, i Identity) (Identity, bool)
	DoneUse(usecase string, i Identity)
}
