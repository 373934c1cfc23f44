package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/punchlist-api/pkg/config"
)

const applicationName = "punchlist-api"

// NewPool abre el pool de la punch list y verifica la conexión.
// Con DATABASE_URL (Supabase) el host se reescribe a IPv4 porque los contenedores suelen no tener IPv6.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(connectionDSN(ctx, cfg))
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	applyPoolSettings(poolConfig, cfg)
	poolConfig.ConnConfig.DialFunc = ipv4Dialer(defaultResolvers())

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, poolConfig.ConnConfig.ConnectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

func connectionDSN(ctx context.Context, cfg config.DBConfig) string {
	if cfg.DatabaseURL != "" {
		return databaseURLWithIPv4(ctx, cfg.DatabaseURL, defaultResolvers())
	}
	dsnCfg := cfg
	if ip, err := lookupIPv4(ctx, cfg.Host, defaultResolvers()); err == nil {
		dsnCfg.Host = ip
	}
	return dsnCfg.DSN()
}

// applyPoolSettings dimensiona el pool para peticiones cortas: cada request hace pocas
// consultas y las masivas son un único UPDATE. statement_timeout corta las consultas colgadas
// para que los listados caigan al snapshot local en lugar de bloquear al cliente.
func applyPoolSettings(pc *pgxpool.Config, cfg config.DBConfig) {
	pc.MaxConns = int32(cfg.MaxConns)
	if pc.MaxConns <= 0 {
		pc.MaxConns = 10
	}
	pc.MinConns = int32(cfg.MinConns)
	if pc.MinConns < 0 || pc.MinConns > pc.MaxConns {
		pc.MinConns = 0
	}
	pc.MaxConnLifetime = 30 * time.Minute
	pc.MaxConnIdleTime = 5 * time.Minute
	pc.HealthCheckPeriod = 30 * time.Second

	connectTimeout := time.Duration(cfg.ConnectTimeoutSeconds) * time.Second
	if connectTimeout <= 0 {
		connectTimeout = 5 * time.Second
	}
	pc.ConnConfig.ConnectTimeout = connectTimeout

	params := pc.ConnConfig.RuntimeParams
	params["application_name"] = applicationName
	if cfg.StatementTimeoutMS > 0 {
		params["statement_timeout"] = strconv.Itoa(cfg.StatementTimeoutMS)
	}
}

// ipv4Dialer conecta por IPv4 si algún resolver lo consigue; si no, dial normal.
func ipv4Dialer(resolvers []*net.Resolver) func(ctx context.Context, network, addr string) (net.Conn, error) {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		var d net.Dialer
		host, port, err := net.SplitHostPort(addr)
		if err != nil {
			return nil, err
		}
		ip, err := lookupIPv4(ctx, host, resolvers)
		if err != nil {
			return d.DialContext(ctx, network, addr)
		}
		return d.DialContext(ctx, "tcp4", net.JoinHostPort(ip, port))
	}
}

// defaultResolvers: el del sistema y, como respaldo, DNS público (el DNS de Docker puede devolver solo AAAA).
func defaultResolvers() []*net.Resolver {
	public := &net.Resolver{
		PreferGo: true,
		Dial: func(ctx context.Context, _, _ string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, "udp", "8.8.8.8:53")
		},
	}
	return []*net.Resolver{net.DefaultResolver, public}
}

var errNoIPv4 = errors.New("sin dirección IPv4")

func lookupIPv4(ctx context.Context, host string, resolvers []*net.Resolver) (string, error) {
	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() != nil {
			return host, nil
		}
		return "", errNoIPv4
	}
	lastErr := errNoIPv4
	for _, r := range resolvers {
		ips, err := r.LookupIP(ctx, "ip4", host)
		if err != nil {
			lastErr = err
			continue
		}
		for _, ip := range ips {
			if ip.To4() != nil {
				return ip.String(), nil
			}
		}
	}
	return "", lastErr
}

// databaseURLWithIPv4 reemplaza el hostname por su IPv4; ante cualquier fallo devuelve la URL intacta.
func databaseURLWithIPv4(ctx context.Context, databaseURL string, resolvers []*net.Resolver) string {
	u, err := url.Parse(databaseURL)
	if err != nil || u.Hostname() == "" {
		return databaseURL
	}
	ip, err := lookupIPv4(ctx, u.Hostname(), resolvers)
	if err != nil {
		return databaseURL
	}
	port := u.Port()
	if port == "" {
		port = "5432"
	}
	u.Host = net.JoinHostPort(ip, port)
	return u.String()
}
