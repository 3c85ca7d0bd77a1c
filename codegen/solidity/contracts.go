package solidity

// AssetRegistry models the registry contract: asset records, verification,
// and ownership transfer.
func AssetRegistry() *Contract {
	return &Contract{
		Name:   "AssetRegistry",
		Notice: "Registry of physical assets with admin-gated verification",
		Fields: []Field{
			{Name: "admin", Type: "address", Public: true},
			{Name: "verifiers", Type: "map[address]bool", Public: true},
			{Name: "nextAssetId", Type: "uint256", Public: true},
			{Name: "assetNames", Type: "map[uint256]string"},
			{Name: "assetDescriptions", Type: "map[uint256]string"},
			{Name: "assetTypes", Type: "map[uint256]string"},
			{Name: "governmentIds", Type: "map[uint256]string"},
			{Name: "metadataRefs", Type: "map[uint256]string"},
			{Name: "assetOwners", Type: "map[uint256]address", Public: true},
			{Name: "assetVerified", Type: "map[uint256]bool", Public: true},
			{Name: "ownerAssets", Type: "map[address]uint256[]"},
		},
		Events: []Event{
			{Name: "AssetRegistered", Params: []Param{
				{Name: "assetId", Type: "uint256", Indexed: true},
				{Name: "owner", Type: "address", Indexed: true},
				{Name: "name", Type: "string"},
			}},
			{Name: "AssetVerified", Params: []Param{
				{Name: "assetId", Type: "uint256", Indexed: true},
				{Name: "verifier", Type: "address", Indexed: true},
			}},
			{Name: "OwnershipTransferred", Params: []Param{
				{Name: "assetId", Type: "uint256", Indexed: true},
				{Name: "from", Type: "address", Indexed: true},
				{Name: "to", Type: "address", Indexed: true},
			}},
		},
		Ctor: &Constructor{
			Body: []string{"admin = msg.sender;"},
		},
		Funcs: []Function{
			{
				Name: "registerAsset",
				Params: []Param{
					{Name: "name", Type: "string memory"},
					{Name: "description", Type: "string memory"},
					{Name: "assetType", Type: "string memory"},
					{Name: "governmentId", Type: "string memory"},
					{Name: "metadataRef", Type: "string memory"},
				},
				Returns: "uint256",
				Requires: []Require{
					{Cond: "bytes(name).length > 0 && bytes(name).length <= 100", Msg: "invalid name"},
					{Cond: "bytes(description).length > 0 && bytes(description).length <= 256", Msg: "invalid description"},
					{Cond: "bytes(assetType).length > 0 && bytes(assetType).length <= 50", Msg: "invalid asset type"},
					{Cond: "bytes(governmentId).length > 0 && bytes(governmentId).length <= 50", Msg: "invalid government id"},
					{Cond: "bytes(metadataRef).length <= 100", Msg: "invalid metadata reference"},
				},
				Body: []string{
					"uint256 assetId = nextAssetId++;",
					"assetNames[assetId] = name;",
					"assetDescriptions[assetId] = description;",
					"assetTypes[assetId] = assetType;",
					"governmentIds[assetId] = governmentId;",
					"metadataRefs[assetId] = metadataRef;",
					"assetOwners[assetId] = msg.sender;",
					"ownerAssets[msg.sender].push(assetId);",
					"emit AssetRegistered(assetId, msg.sender, name);",
					"return assetId;",
				},
			},
			{
				Name:   "addVerifier",
				Params: []Param{{Name: "verifier", Type: "address"}},
				Requires: []Require{
					{Cond: "msg.sender == admin", Msg: "not admin"},
					{Cond: "verifier != address(0)", Msg: "zero address"},
				},
				Body: []string{"verifiers[verifier] = true;"},
			},
			{
				Name:   "verifyAsset",
				Params: []Param{{Name: "assetId", Type: "uint256"}},
				Requires: []Require{
					{Cond: "assetOwners[assetId] != address(0)", Msg: "Token does not exist"},
					{Cond: "msg.sender == admin || verifiers[msg.sender]", Msg: "not a verifier"},
				},
				Body: []string{
					"if (assetVerified[assetId]) {",
					"    return;",
					"}",
					"assetVerified[assetId] = true;",
					"emit AssetVerified(assetId, msg.sender);",
				},
			},
			{
				Name: "transferOwnership",
				Params: []Param{
					{Name: "assetId", Type: "uint256"},
					{Name: "newOwner", Type: "address"},
				},
				Requires: []Require{
					{Cond: "newOwner != address(0)", Msg: "zero address"},
					{Cond: "assetOwners[assetId] != address(0)", Msg: "Token does not exist"},
					{Cond: "assetOwners[assetId] == msg.sender", Msg: "not asset owner"},
				},
				Body: []string{
					"address previous = assetOwners[assetId];",
					"assetOwners[assetId] = newOwner;",
					"uint256[] storage held = ownerAssets[previous];",
					"for (uint256 i = 0; i < held.length; i++) {",
					"    if (held[i] == assetId) {",
					"        held[i] = held[held.length - 1];",
					"        held.pop();",
					"        break;",
					"    }",
					"}",
					"ownerAssets[newOwner].push(assetId);",
					"emit OwnershipTransferred(assetId, previous, newOwner);",
				},
			},
			{
				Name:    "getAsset",
				Params:  []Param{{Name: "assetId", Type: "uint256"}},
				Returns: "string memory, string memory, string memory, address, bool",
				View:    true,
				Requires: []Require{
					{Cond: "assetOwners[assetId] != address(0)", Msg: "Token does not exist"},
				},
				Body: []string{
					"return (assetNames[assetId], assetTypes[assetId], governmentIds[assetId], assetOwners[assetId], assetVerified[assetId]);",
				},
			},
			{
				Name:    "getOwnerAssets",
				Params:  []Param{{Name: "owner", Type: "address"}},
				Returns: "uint256[] memory",
				View:    true,
				Body:    []string{"return ownerAssets[owner];"},
			},
			{
				Name:    "isAssetVerified",
				Params:  []Param{{Name: "assetId", Type: "uint256"}},
				Returns: "bool",
				View:    true,
				Body:    []string{"return assetVerified[assetId];"},
			},
		},
	}
}

// AssetNFT models the non-fungible contract: one ownership unit per asset
// with a detail tuple and its own verification flag.
func AssetNFT() *Contract {
	return &Contract{
		Name:   "AssetNFT",
		Notice: "One ownership unit per registered asset",
		Fields: []Field{
			{Name: "name", Type: "string", Public: true},
			{Name: "symbol", Type: "string", Public: true},
			{Name: "owners", Type: "map[uint256]address"},
			{Name: "tokenApprovals", Type: "map[uint256]address", Public: true},
			{Name: "operatorApprovals", Type: "map[address]map[address]bool", Public: true},
			{Name: "assetTypes", Type: "map[uint256]string"},
			{Name: "governmentIds", Type: "map[uint256]string"},
			{Name: "tokenURIs", Type: "map[uint256]string"},
			{Name: "verified", Type: "map[uint256]bool"},
		},
		Events: []Event{
			{Name: "AssetMinted", Params: []Param{
				{Name: "tokenId", Type: "uint256", Indexed: true},
				{Name: "owner", Type: "address", Indexed: true},
			}},
			{Name: "AssetVerified", Params: []Param{
				{Name: "tokenId", Type: "uint256", Indexed: true},
			}},
			{Name: "Transfer", Params: []Param{
				{Name: "from", Type: "address", Indexed: true},
				{Name: "to", Type: "address", Indexed: true},
				{Name: "tokenId", Type: "uint256", Indexed: true},
			}},
			{Name: "Approval", Params: []Param{
				{Name: "owner", Type: "address", Indexed: true},
				{Name: "approved", Type: "address", Indexed: true},
				{Name: "tokenId", Type: "uint256", Indexed: true},
			}},
			{Name: "ApprovalForAll", Params: []Param{
				{Name: "owner", Type: "address", Indexed: true},
				{Name: "operator", Type: "address", Indexed: true},
				{Name: "approved", Type: "bool"},
			}},
		},
		Ctor: &Constructor{
			Body: []string{
				`name = "Asset NFT";`,
				`symbol = "ANFT";`,
			},
		},
		Funcs: []Function{
			{
				Name: "mintAsset",
				Params: []Param{
					{Name: "to", Type: "address"},
					{Name: "tokenId", Type: "uint256"},
					{Name: "assetType", Type: "string memory"},
					{Name: "governmentId", Type: "string memory"},
					{Name: "tokenURI_", Type: "string memory"},
				},
				Requires: []Require{
					{Cond: "to != address(0)", Msg: "zero address"},
					{Cond: "owners[tokenId] == address(0)", Msg: "token already minted"},
				},
				Body: []string{
					"owners[tokenId] = to;",
					"assetTypes[tokenId] = assetType;",
					"governmentIds[tokenId] = governmentId;",
					"tokenURIs[tokenId] = tokenURI_;",
					"emit AssetMinted(tokenId, to);",
					"emit Transfer(address(0), to, tokenId);",
				},
			},
			{
				Name:   "verifyAsset",
				Params: []Param{{Name: "tokenId", Type: "uint256"}},
				Requires: []Require{
					{Cond: "owners[tokenId] != address(0)", Msg: "Token does not exist"},
				},
				Body: []string{
					"if (verified[tokenId]) {",
					"    return;",
					"}",
					"verified[tokenId] = true;",
					"emit AssetVerified(tokenId);",
				},
			},
			{
				Name:    "ownerOf",
				Params:  []Param{{Name: "tokenId", Type: "uint256"}},
				Returns: "address",
				View:    true,
				Requires: []Require{
					{Cond: "owners[tokenId] != address(0)", Msg: "Token does not exist"},
				},
				Body: []string{"return owners[tokenId];"},
			},
			{
				Name:    "tokenURI",
				Params:  []Param{{Name: "tokenId", Type: "uint256"}},
				Returns: "string memory",
				View:    true,
				Requires: []Require{
					{Cond: "owners[tokenId] != address(0)", Msg: "Token does not exist"},
				},
				Body: []string{"return tokenURIs[tokenId];"},
			},
			{
				Name:    "getAssetDetails",
				Params:  []Param{{Name: "tokenId", Type: "uint256"}},
				Returns: "string memory, string memory, bool",
				View:    true,
				Requires: []Require{
					{Cond: "owners[tokenId] != address(0)", Msg: "Token does not exist"},
				},
				Body: []string{
					"return (assetTypes[tokenId], governmentIds[tokenId], verified[tokenId]);",
				},
			},
			{
				Name:    "isAssetVerified",
				Params:  []Param{{Name: "tokenId", Type: "uint256"}},
				Returns: "bool",
				View:    true,
				Body:    []string{"return verified[tokenId];"},
			},
			{
				Name: "approve",
				Params: []Param{
					{Name: "to", Type: "address"},
					{Name: "tokenId", Type: "uint256"},
				},
				Requires: []Require{
					{Cond: "owners[tokenId] != address(0)", Msg: "Token does not exist"},
					{Cond: "msg.sender == owners[tokenId] || operatorApprovals[owners[tokenId]][msg.sender]", Msg: "not authorized"},
				},
				Body: []string{
					"tokenApprovals[tokenId] = to;",
					"emit Approval(owners[tokenId], to, tokenId);",
				},
			},
			{
				Name: "setApprovalForAll",
				Params: []Param{
					{Name: "operator", Type: "address"},
					{Name: "approved", Type: "bool"},
				},
				Requires: []Require{
					{Cond: "operator != address(0)", Msg: "zero address"},
				},
				Body: []string{
					"operatorApprovals[msg.sender][operator] = approved;",
					"emit ApprovalForAll(msg.sender, operator, approved);",
				},
			},
			{
				Name: "transferFrom",
				Params: []Param{
					{Name: "from", Type: "address"},
					{Name: "to", Type: "address"},
					{Name: "tokenId", Type: "uint256"},
				},
				Requires: []Require{
					{Cond: "to != address(0)", Msg: "zero address"},
					{Cond: "owners[tokenId] == from", Msg: "from is not the owner"},
					{Cond: "msg.sender == from || tokenApprovals[tokenId] == msg.sender || operatorApprovals[from][msg.sender]", Msg: "not authorized"},
				},
				Body: []string{
					"delete tokenApprovals[tokenId];",
					"owners[tokenId] = to;",
					"emit Transfer(from, to, tokenId);",
				},
			},
		},
	}
}

// AssetToken models the fungible contract. Minting is gated on the NFT
// contract reporting the backing asset as verified.
func AssetToken() *Contract {
	return &Contract{
		Name:   "AssetToken",
		Notice: "Fungible claims against verified assets",
		Fields: []Field{
			{Name: "name", Type: "string", Public: true},
			{Name: "symbol", Type: "string", Public: true},
			{Name: "decimals", Type: "uint8", Public: true},
			{Name: "totalSupply", Type: "uint256", Public: true},
			{Name: "assetNFT", Type: "AssetNFT", Public: true},
			{Name: "balances", Type: "map[address]uint256"},
			{Name: "allowances", Type: "map[address]map[address]uint256"},
			{Name: "issuedForAsset", Type: "map[uint256]uint256", Public: true},
		},
		Events: []Event{
			{Name: "Transfer", Params: []Param{
				{Name: "from", Type: "address", Indexed: true},
				{Name: "to", Type: "address", Indexed: true},
				{Name: "amount", Type: "uint256"},
			}},
			{Name: "Approval", Params: []Param{
				{Name: "owner", Type: "address", Indexed: true},
				{Name: "spender", Type: "address", Indexed: true},
				{Name: "amount", Type: "uint256"},
			}},
			{Name: "TokensMinted", Params: []Param{
				{Name: "to", Type: "address", Indexed: true},
				{Name: "tokenId", Type: "uint256", Indexed: true},
				{Name: "amount", Type: "uint256"},
			}},
			{Name: "TokensBurned", Params: []Param{
				{Name: "from", Type: "address", Indexed: true},
				{Name: "amount", Type: "uint256"},
			}},
		},
		Ctor: &Constructor{
			Params: []Param{{Name: "nftAddress", Type: "address"}},
			Body: []string{
				`name = "Asset Token";`,
				`symbol = "AST";`,
				"decimals = 18;",
				"assetNFT = AssetNFT(nftAddress);",
			},
		},
		Funcs: []Function{
			{
				Name: "mintTokens",
				Params: []Param{
					{Name: "to", Type: "address"},
					{Name: "tokenId", Type: "uint256"},
					{Name: "amount", Type: "uint256"},
				},
				Requires: []Require{
					{Cond: "to != address(0)", Msg: "zero address"},
					{Cond: "amount > 0", Msg: "zero amount"},
					{Cond: "assetNFT.isAssetVerified(tokenId)", Msg: "Asset must be verified"},
				},
				Body: []string{
					"balances[to] += amount;",
					"totalSupply += amount;",
					"issuedForAsset[tokenId] += amount;",
					"emit TokensMinted(to, tokenId, amount);",
					"emit Transfer(address(0), to, amount);",
				},
			},
			{
				Name: "transfer",
				Params: []Param{
					{Name: "to", Type: "address"},
					{Name: "amount", Type: "uint256"},
				},
				Returns: "bool",
				Requires: []Require{
					{Cond: "to != address(0)", Msg: "zero address"},
					{Cond: "amount > 0", Msg: "zero amount"},
					{Cond: "balances[msg.sender] >= amount", Msg: "insufficient balance"},
				},
				Body: []string{
					"balances[msg.sender] -= amount;",
					"balances[to] += amount;",
					"emit Transfer(msg.sender, to, amount);",
					"return true;",
				},
			},
			{
				Name: "approve",
				Params: []Param{
					{Name: "spender", Type: "address"},
					{Name: "amount", Type: "uint256"},
				},
				Returns: "bool",
				Requires: []Require{
					{Cond: "spender != address(0)", Msg: "zero address"},
				},
				Body: []string{
					"allowances[msg.sender][spender] = amount;",
					"emit Approval(msg.sender, spender, amount);",
					"return true;",
				},
			},
			{
				Name: "transferFrom",
				Params: []Param{
					{Name: "from", Type: "address"},
					{Name: "to", Type: "address"},
					{Name: "amount", Type: "uint256"},
				},
				Returns: "bool",
				Requires: []Require{
					{Cond: "to != address(0)", Msg: "zero address"},
					{Cond: "balances[from] >= amount", Msg: "insufficient balance"},
					{Cond: "allowances[from][msg.sender] >= amount", Msg: "insufficient allowance"},
				},
				Body: []string{
					"allowances[from][msg.sender] -= amount;",
					"balances[from] -= amount;",
					"balances[to] += amount;",
					"emit Transfer(from, to, amount);",
					"return true;",
				},
			},
			{
				Name:   "burnTokens",
				Params: []Param{{Name: "amount", Type: "uint256"}},
				Requires: []Require{
					{Cond: "amount > 0", Msg: "zero amount"},
					{Cond: "balances[msg.sender] >= amount", Msg: "insufficient balance"},
				},
				Body: []string{
					"balances[msg.sender] -= amount;",
					"totalSupply -= amount;",
					"emit TokensBurned(msg.sender, amount);",
					"emit Transfer(msg.sender, address(0), amount);",
				},
			},
			{
				Name:    "balanceOf",
				Params:  []Param{{Name: "account", Type: "address"}},
				Returns: "uint256",
				View:    true,
				Body:    []string{"return balances[account];"},
			},
			{
				Name: "allowance",
				Params: []Param{
					{Name: "owner", Type: "address"},
					{Name: "spender", Type: "address"},
				},
				Returns: "uint256",
				View:    true,
				Body:    []string{"return allowances[owner][spender];"},
			},
		},
	}
}
