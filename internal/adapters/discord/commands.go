package discord

import "github.com/bwmarrin/discordgo"

var Commands = []*discordgo.ApplicationCommand{
	{
		Name:        "ping",
		Description: "Comprueba que el bot responde",
	},
	{
		Name:        "rank",
		Description: "Tu nivel y XP (o los de otro miembro) con tarjeta de progreso",
		Options: []*discordgo.ApplicationCommandOption{{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "member",
			Description: "Miembro a consultar (por defecto, vos)",
		}},
	},
	{
		Name:        "top",
		Description: "Leaderboard del servidor (10 por página)",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "axis",
				Description: "Eje del ranking",
				Required:    true,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "text", Value: "text"},
					{Name: "voice", Value: "voice"},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "page",
				Description: "Página (default 1)",
			},
		},
	},
	{
		Name:        "xp",
		Description: "Ajusta XP manualmente (admins)",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "add",
				Description: "Agregar XP a un miembro",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionUser, Name: "member", Description: "Miembro", Required: true},
					{Type: discordgo.ApplicationCommandOptionInteger, Name: "text", Description: "XP de texto"},
					{Type: discordgo.ApplicationCommandOptionInteger, Name: "voice", Description: "XP de voz"},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "remove",
				Description: "Quitar XP a un miembro (nunca baja de 0)",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionUser, Name: "member", Description: "Miembro", Required: true},
					{Type: discordgo.ApplicationCommandOptionInteger, Name: "text", Description: "XP de texto"},
					{Type: discordgo.ApplicationCommandOptionInteger, Name: "voice", Description: "XP de voz"},
				},
			},
		},
	},
	{
		Name:        "levels",
		Description: "Ver o cambiar la configuración de niveles (admins)",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "show", Description: "Ver configuración"},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "channel",
				Description: "Canal para anuncios de level-up",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionChannel, Name: "channel", Description: "Canal de texto", Required: true},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "messages",
				Description: "Rango de XP por mensaje",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionInteger, Name: "min", Description: "XP mínimo", Required: true},
					{Type: discordgo.ApplicationCommandOptionInteger, Name: "max", Description: "XP máximo", Required: true},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "voice",
				Description: "XP de voz por minuto",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionInteger, Name: "amount", Description: "XP por minuto en voz", Required: true},
				},
			},
		},
	},
	{
		Name:        "rewards",
		Description: "Roles por nivel (admins)",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "add",
				Description: "Otorgar un rol al alcanzar niveles de texto Y voz",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionRole, Name: "role", Description: "Rol a otorgar", Required: true},
					{Type: discordgo.ApplicationCommandOptionInteger, Name: "text", Description: "Nivel de texto requerido", Required: true},
					{Type: discordgo.ApplicationCommandOptionInteger, Name: "voice", Description: "Nivel de voz requerido", Required: true},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "remove",
				Description: "Quitar un rol del sistema de rewards",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionRole, Name: "role", Description: "Rol", Required: true},
				},
			},
			{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "list", Description: "Listar rewards configurados"},
		},
	},
	{
		Name:        "fixxp",
		Description: "Repara XP negativo (admins)",
		Options: []*discordgo.ApplicationCommandOption{{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "member",
			Description: "Miembro puntual (vacío = todos)",
		}},
	},
}
