package setup

import (
	"context"

	"github.com/solsuite/solstake/client"
	"github.com/solsuite/solstake/config"
)

type ContextKey string

const ContextClient ContextKey = "client"
const ContextWalletConfig ContextKey = "wallet-config"
const ContextArgs ContextKey = "args"

func CreateContext(cli *client.Client, cfg *config.Wallet, args *RpcArgs) context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, ContextClient, cli)
	ctx = context.WithValue(ctx, ContextWalletConfig, cfg)
	ctx = context.WithValue(ctx, ContextArgs, args)
	return ctx
}

func UnwrapClient(ctx context.Context) *client.Client {
	return ctx.Value(ContextClient).(*client.Client)
}

func UnwrapWalletConfig(ctx context.Context) *config.Wallet {
	return ctx.Value(ContextWalletConfig).(*config.Wallet)
}

func UnwrapArgs(ctx context.Context) *RpcArgs {
	return ctx.Value(ContextArgs).(*RpcArgs)
}
