// Package inscriber stores collection and asset content as HCS-1 inscriptions
// through the Kiloscribe inscription service.
//
// An upload authenticates with the service (or uses a pre-issued API key),
// starts an inscription job with the file as base64, executes the returned
// transaction with the operator key, and waits for the job to complete over
// websocket with HTTP polling as the fallback. The resulting content URI has
// the form hcs://1/<topicId>.
//
//	store, err := inscriber.Open(ctx, inscriber.StoreConfig{
//		Network:   "testnet",
//		AccountID: "0.0.1234",
//	}, keypair, executor)
//	uri, err := store.UploadBinary(ctx, image, "collection.png", "image/png")
package inscriber
