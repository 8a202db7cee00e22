// Copyright 2021 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package drbg

// Known-answer test vectors, transcribed verbatim from the NIST CAVP DRBG
// test vector set
// (http://csrc.nist.gov/groups/STM/cavp/documents/drbg/drbgtestvectors.zip),
// the same vectors the GnuPG/libgcrypt DRBG implementation this package's
// design is grounded on bundles for its own health check.
//
// Each vector drives: instantiate (entropy, personalization), an optional
// explicit reseed (entropyReseed, addtlReseed), a first generate call
// (addtlA, or a forced prediction-resistance reseed with entPRA), and a
// second generate call (addtlB, or entPRB) whose output must equal
// expected.
type katVector struct {
	name                string
	mechanism           MechanismID
	predictionResistant bool

	entropy         []byte
	personalization []byte

	entropyReseed []byte
	addtlReseed   []byte

	addtlA []byte
	entPRA []byte

	addtlB []byte
	entPRB []byte

	expected []byte
}

var katVectors = []katVector{
	{
		name:      "hash-sha256-pr",
		mechanism: HashSHA256,
		predictionResistant: true,
		entropy: hx("5df214bcf6b54e0bf00d6f2de201667bd0a473a421ddb0c0517909f4eaa908faa667e0e1d188a8adee6974b355069bf6"),
		addtlA: hx("be13db2ae9a8fe0997e1ce5de8bbc07c4fcb62193f0fd2ada9d01d5902c4ff70"),
		entPRA: hx("ef4806a2c245f144fa342ceb8d783c098f347220f2e7fd13760af6dc3cf5c015"),
		addtlB: hx("6f9613e2a7f56cfedf66e3316376bf20270649f1f30177419febe438fe6700cd"),
		entPRB: hx("4bbee524ed6a2d0cdb735e09f9ad677c51478b6b302ac6de76aa55048b0a7295"),
		expected: hx("3b147199a1daa042e6c88532702032539abed11e15effb4c256e193af0b9cbdef03bc6184d855a9bf1e3c223039308dba7074b3378404deb24f56e814a1b6ea3945243b0af2e21f442468e90ed342175eada67b6e4f6ffc6316c9a5adbb3971309d32098332d6dd7b56aa8a99a5bd68752a1892b4b9c64605047a3638116af19"),
	},
	{
		name:      "hmac-sha256-pr",
		mechanism: HMACSHA256,
		predictionResistant: true,
		entropy: hx("135496fc1b7d28f318c9a789b6b3c872ac00d459362505afa5db96cb3c584687a5aabf203bfe230ed1c7410f3fc9b367"),
		personalization: hx("64b6fc60bc6176236d3f4a0fe1b4d5209e70dd03536dbfcecd5680bcb815c8aa"),
		entPRA: hx("e2bdb7480806f3e1933cac79a72b11dae32ee191a50219572028adf260d7cd45"),
		entPRB: hx("8bd469fcff599595c651de71685ffcf94aabec5acbbed3661ffa74d3aca67460"),
		expected: hx("1f9eafe4d246b747414c659901e93bbb830c0ab0c13ae2b3314eeb9373ee0b26c263a5754599d45c9fa1d445876b206140ea78a532df9e6617afb1889e2e23ddc1da139788a5b65e90144eef13ab5cd92c979e7cd7f8ceea81f5cd71154944ce83b605fb7d30b5572c314ffcfe80b6c0130c5b9b2e8f3dfcc2a30c111b805ff3"),
	},
	{
		name:      "ctr-aes128-pr",
		mechanism: CTRAES128,
		predictionResistant: true,
		entropy: hx("92898f31fa1cff6d182f260643dff818c2a4d972c3b9b697"),
		personalization: hx("ea65ee60264e7eb60e8268c4373c5c0b"),
		addtlA: hx("1a40fae3cc6c7ca0f8daba59236dad1d"),
		entPRA: hx("20728a06f86f8dd441e272b7c42ce810"),
		addtlB: hx("9f72766cc746e5ed2e532012bc59318c"),
		entPRB: hx("3db0f094f305503317863e2208f7a501"),
		expected: hx("5a3539870f4d22a40924ee71c96fac720ad6f08882d0832873ec3f93d8ab4523f07eac45145e939fb1d676433db6e80888f6da89087742fe1af43fc423c51f68"),
	},
	{
		name:      "hash-sha256-nopr",
		mechanism: HashSHA256,
		entropy: hx("73d3fba3945f2b5fb98ff69c8a9317ae19c34cc3d6caa32d16fc42d22dd56f56cc1d30ff9e063e09ce58e69a35b3a656"),
		addtlA: hx("f4d5983da8fcfa37b7546773c7c3dd473471025dc1a0d310c18bbdf566346fdd"),
		addtlB: hx("f79e6a560e73e9d97ad169e06f8c551c44d1ce6f28cca44da8c085d15a0c5940"),
		expected: hx("717b93461a40aa35a4aac5e76d5b5b8aa0df397dae71585b3c7cb4f089fa4a8ca95c54c040dfbcce268134f8ba7d1ce8ad21e074cf4884301fa1d54f81422ff4db0b23f87327b81d42f84458d85b29270af86959b57844eb9ee0686f429ab05be04ecb6aaae2d2d533253ee06cc76a07a503839fe28bd11c70a8075997ebf6be"),
	},
	{
		name:      "hmac-sha256-nopr",
		mechanism: HMACSHA256,
		entropy: hx("8df013b4d103523073917ddf6a869793059e9943fc8654549e7ab22f7c29f122da2625af2ddd4abcce3cf4fa4659d84e"),
		personalization: hx("b571e66d7c338bc07b76ad3757bb2f9452bf7e07437ae8581ce7bc7c3ac651a9"),
		expected: hx("b91cba4cc84fa25df8610b81b641402768a2097234932e37d590b1154cbd23f97452e310e291c45146147f0da2d81761fe90fba64f94419c0f662b28c1ed94da487bb7e73eec798fbcf981b791d1be4f177a8907aa3c401643a5b62b87b89d66b3a60e40d4a8e4e9d82af6d2700e6f535cdb51f75c321729103741030ccc3a56"),
	},
	{
		name:      "ctr-aes128-nopr",
		mechanism: CTRAES128,
		entropy: hx("c0701f9250758fcdf2be739880db66eb1468b4a5879c2da6"),
		personalization: hx("8008aee8e96940c50873c79f8ecfe002"),
		addtlA: hx("f901f8167a1dffde8e3c83e24485e7fe"),
		addtlB: hx("171c0938c2389f97876055b48216627f"),
		expected: hx("97c0c0e5a0ccf24f3363488adb130a3589bf806562ee13957c33d37df407777a2b650b5f455c13f190777fc5043fcc1a38f8cd1bbbd557d14a4c2e8a2b491e5c"),
	},
	{
		name:      "hash-sha1-nopr",
		mechanism: HashSHA1,
		entropy: hx("1610b828ccd27de08ceea032a20e9208492cf1709242f6b5"),
		entropyReseed: hx("72d28c908edaf9a4d1e526d8f2ded544"),
		expected: hx("56f33d4fdbb9a5b64d26234497e9dcb87798c68d08f7c41199d4bddf97ebbf6cb5550e5d149ff4d5bd0f05f25a6988c17436396227184af84a564335658e2f8572bea333eee2abff22ffa6de3e22aca2"),
	},
	{
		name:      "hash-sha1-nopr-2",
		mechanism: HashSHA1,
		entropy: hx("d9bab5cedca96f6178d64509a0dfdc5edad8989414450e01"),
		entropyReseed: hx("c6bad074c5906786f5e1f32099f5b491"),
		addtlReseed: hx("3e6bf46f4daa3825d7194e694e7752f7"),
		addtlA: hx("04fa2895aa5a6f8c5743343b805e5ea4"),
		addtlB: hx("df5dc459dff02aa2f052d721ec607230"),
		expected: hx("c48b89f9da3f748245555d5d033b693dd71a4df5690205cefcd720113cc24e098936ff5e77b541535870b339468cdd8d6faf8c56163a700a75b23e599b5aecf16f3baf6d5f2419971f24f446720feabe"),
	},
}

// hx decodes a fixed hex literal. It panics on malformed input since the
// vectors are a compile-time table, never user input.
func hx(s string) []byte {
	if len(s)%2 != 0 {
		panic("drbg: hx: odd-length hex string")
	}
	out := make([]byte, len(s)/2)
	for i := range out {
		out[i] = hexNibble(s[2*i])<<4 | hexNibble(s[2*i+1])
	}
	return out
}

func hexNibble(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		panic("drbg: hx: invalid hex digit")
	}
}
