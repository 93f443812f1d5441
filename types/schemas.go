package types

import (
	ews "github.com/ewsproto/ews-go"
	"github.com/ewsproto/ews-go/traits"
	"github.com/ewsproto/ews-go/xmlcodec"
)

var (
	mailboxSchema = ews.NewSchema("exchange.types#Mailbox", ews.ShapeTypeStructure,
		ews.WithTraits(&traits.XMLNamePrefix{Prefix: "t"}),
	)

	baseShapeSchema = ews.NewSchema("exchange.types#BaseShape", ews.ShapeTypeEnum,
		ews.WithVariant("IdOnly", nil),
		ews.WithVariant("Default", nil),
		ews.WithVariant("AllProperties", nil),
		ews.WithTraits(&traits.XMLNamePrefix{Prefix: "t"}),
	)

	traversalSchema = ews.NewSchema("exchange.messages#Traversal", ews.ShapeTypeEnum,
		ews.WithVariant("Shallow", nil),
		ews.WithVariant("SoftDeleted", nil),
		ews.WithVariant("Associated", nil),
	)

	itemShapeSchema = ews.NewSchema("exchange.messages#ItemShape", ews.ShapeTypeStructure,
		ews.WithMember("base_shape", baseShapeSchema),
	)

	folderIdSchema = ews.NewSchema("exchange.types#FolderId", ews.ShapeTypeUnion,
		ews.WithVariant("FolderId", ews.NewSchema("exchange.types#FolderIdValues", ews.ShapeTypeStructure,
			ews.WithMember("id", ews.PreludeString, &traits.XMLAttribute{}),
			ews.WithMember("change_key", ews.PreludeString, &traits.XMLAttribute{}),
		)),
		ews.WithVariant("DistinguishedFolderId", ews.NewSchema("exchange.types#DistinguishedFolderIdValues", ews.ShapeTypeStructure,
			ews.WithMember("id", ews.PreludeString, &traits.XMLAttribute{}),
			ews.WithMember("change_key", ews.PreludeString, &traits.XMLAttribute{}),
			ews.WithMember("mailbox", mailboxSchema),
		)),
		ews.WithTraits(&traits.XMLNamePrefix{Prefix: "t"}),
	)

	parentFolderIdsSchema = ews.NewSchema("exchange.messages#ParentFolderIds", ews.ShapeTypeStructure,
		ews.WithPositionalMember(folderIdSchema),
	)

	findItemSchema = ews.NewSchema("exchange.messages#FindItem", ews.ShapeTypeStructure,
		ews.WithMember("traversal", traversalSchema, &traits.XMLAttribute{}),
		ews.WithMember("item_shape", itemShapeSchema),
		ews.WithMember("parent_folder_ids", parentFolderIdsSchema),
		ews.WithTraits(
			&traits.XMLNamespace{URI: MessagesNamespaceURI},
			&traits.XMLNamespace{Prefix: "t", URI: TypesNamespaceURI},
		),
	)

	bodyContentsSchema = ews.NewSchema("exchange.soap#BodyContents", ews.ShapeTypeUnion,
		ews.WithVariant("FindItem", ews.NewSchema("exchange.soap#FindItemContents", ews.ShapeTypeStructure,
			ews.WithPositionalMember(findItemSchema),
		)),
	)

	bodySchema = ews.NewSchema("exchange.soap#Body", ews.ShapeTypeStructure,
		ews.WithMember("contents", bodyContentsSchema),
		ews.WithTraits(&traits.XMLNamePrefix{Prefix: "soap"}),
	)

	envelopeSchema = ews.NewSchema("exchange.soap#Envelope", ews.ShapeTypeStructure,
		ews.WithMember("body", bodySchema),
		ews.WithTraits(
			&traits.XMLNamespace{Prefix: "soap", URI: SOAPNamespaceURI},
			&traits.XMLNamespace{Prefix: "t", URI: TypesNamespaceURI},
			&traits.XMLNamePrefix{Prefix: "soap"},
		),
	)
)

func init() {
	xmlcodec.MustRegister[Mailbox](mailboxSchema)
	xmlcodec.MustRegister[BaseShape](baseShapeSchema)
	xmlcodec.MustRegister[Traversal](traversalSchema)
	xmlcodec.MustRegister[ItemShape](itemShapeSchema)
	xmlcodec.MustRegisterUnion[FolderId](folderIdSchema,
		xmlcodec.BindVariant[FolderIdMemberFolderId]("FolderId"),
		xmlcodec.BindVariant[FolderIdMemberDistinguishedFolderId]("DistinguishedFolderId"),
	)
	xmlcodec.MustRegister[ParentFolderIds](parentFolderIdsSchema)
	xmlcodec.MustRegister[FindItem](findItemSchema)
	xmlcodec.MustRegisterUnion[BodyContents](bodyContentsSchema,
		xmlcodec.BindVariant[BodyContentsMemberFindItem]("FindItem"),
	)
	xmlcodec.MustRegister[Body](bodySchema)
	xmlcodec.MustRegister[Envelope](envelopeSchema)
}
