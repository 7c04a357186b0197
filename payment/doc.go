// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package payment confirms vote pack payments with the provider.

The checkout widget runs in the browser and charges the buyer directly.
The server never sees card or mobile money details. It only asks the
provider whether a reference was paid before crediting votes:

	POST /purchases               -> pending transaction, reference
	(widget charges the buyer)
	POST /purchases/{ref}/confirm -> Verifier.Verify -> store.CompletePurchase

Implementations:

  - PaystackVerifier: Paystack's transaction verify endpoint
  - FakeVerifier: approves everything unless declined or held

Amounts are in minor units (pesewas for GHS), so a 60 GHS pack is 6000.
*/
package payment
