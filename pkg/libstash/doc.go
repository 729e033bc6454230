//
// libstash is a client that interacts with a polishstash server for syncing
// the on-hand inventory of an account.
//

// Create client
//
//	client, err := libstash.NewDefaultClient("https://stash.nas.lan")
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Authenticate
//
//	err = client.Login("george.abitbol@nas.lan", "12345678")
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Read and write the inventory
//
//	codes, err := client.FetchInventory()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	err = client.UpsertCode("042")
//	if err != nil {
//		log.Fatal(err)
//	}
package libstash
